package models

import "time"

// SystemData is a single telemetry reading pushed by an irrigation unit.
type SystemData struct {
	ID              int64      `json:"id"`
	ProductID       string     `json:"product_id"`
	SoilMoisture    *float64   `json:"soil_moisture"`
	WaterUsageToday *float64   `json:"water_usage_today"`
	Temperature     *float64   `json:"temperature"`
	Humidity        *float64   `json:"humidity"`
	SystemStatus    string     `json:"system_status"`
	LastWatering    *time.Time `json:"last_watering"`
	NextWatering    *time.Time `json:"next_watering"`
	RecordedAt      time.Time  `json:"recorded_at"`
}

// SystemDataAverage is the 30-day aggregate view for one product.
type SystemDataAverage struct {
	AvgSoilMoisture *float64 `json:"avg_soil_moisture"`
	AvgTemperature  *float64 `json:"avg_temperature"`
	AvgHumidity     *float64 `json:"avg_humidity"`
	TotalWaterUsage *float64 `json:"total_water_usage"`
}
