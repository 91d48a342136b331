package models

import "time"

type UserStats struct {
	TotalUsers     int `json:"total_users"`
	AdminUsers     int `json:"admin_users"`
	NewUsers30Days int `json:"new_users_30_days"`
	NewUsers7Days  int `json:"new_users_7_days"`
}

type ProductStats struct {
	TotalProducts       int `json:"total_products"`
	ActiveProducts      int `json:"active_products"`
	InactiveProducts    int `json:"inactive_products"`
	MaintenanceProducts int `json:"maintenance_products"`
	NewProducts30Days   int `json:"new_products_30_days"`
}

// SystemStats aggregates telemetry over the last 24 hours.
type SystemStats struct {
	AvgSoilMoisture *float64 `json:"avg_soil_moisture"`
	AvgTemperature  *float64 `json:"avg_temperature"`
	AvgHumidity     *float64 `json:"avg_humidity"`
	TotalWaterUsage *float64 `json:"total_water_usage"`
	ActiveSystems   int      `json:"active_systems"`
}

// SystemHealth runs over the latest reading of every product.
type SystemHealth struct {
	TotalSystems       int `json:"total_systems"`
	ErrorSystems       int `json:"error_systems"`
	LowMoistureSystems int `json:"low_moisture_systems"`
	HighTempSystems    int `json:"high_temp_systems"`
}

// ActivityItem is one entry in the admin recent-activity feed.
type ActivityItem struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
