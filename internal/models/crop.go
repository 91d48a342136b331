package models

import "time"

type Crop struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	CropName          string    `json:"crop_name"`
	PlantingDate      string    `json:"planting_date"`
	GrowthStage       string    `json:"growth_stage"`
	WateringSchedule  *string   `json:"watering_schedule,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

var growthStages = map[string]struct{}{
	"seedling":   {},
	"vegetative": {},
	"flowering":  {},
	"fruiting":   {},
	"harvest":    {},
}

func ValidGrowthStage(s string) bool {
	_, ok := growthStages[s]
	return ok
}
