package models

import "time"

const (
	ProductStatusActive      = "active"
	ProductStatusInactive    = "inactive"
	ProductStatusMaintenance = "maintenance"
)

type Product struct {
	ID               int       `json:"id"`
	ProductID        string    `json:"product_id"`
	UserID           int       `json:"user_id"`
	RegistrationDate time.Time `json:"registration_date"`
	Status           string    `json:"status"`

	// Latest telemetry snapshot, joined in list queries. Nil when the
	// device has not reported yet.
	SoilMoisture    *float64   `json:"soil_moisture,omitempty"`
	WaterUsageToday *float64   `json:"water_usage_today,omitempty"`
	Temperature     *float64   `json:"temperature,omitempty"`
	Humidity        *float64   `json:"humidity,omitempty"`
	SystemStatus    *string    `json:"system_status,omitempty"`
	LastWatering    *time.Time `json:"last_watering,omitempty"`
	NextWatering    *time.Time `json:"next_watering,omitempty"`

	// Owner info, joined for admin listings only.
	UserName  string `json:"user_name,omitempty"`
	UserPhone string `json:"user_phone,omitempty"`
}

func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusMaintenance:
		return true
	}
	return false
}
