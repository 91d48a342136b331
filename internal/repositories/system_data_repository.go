package repositories

import (
	"database/sql"
	"fmt"

	"github.com/BornToCode265/ADIS/internal/models"
)

type SystemDataRepository interface {
	Create(d *models.SystemData) error
	GetLatest(productID string) (*models.SystemData, error)
	GetHistory(productID string, days int) ([]*models.SystemData, error)
	GetAverages(productID string, days int) (*models.SystemDataAverage, error)
	GetSystemStats() (*models.SystemStats, error)
	GetSystemHealth() (*models.SystemHealth, error)
}

type systemDataRepository struct {
	DB *sql.DB
}

func NewSystemDataRepository(db *sql.DB) SystemDataRepository {
	return &systemDataRepository{DB: db}
}

func (r *systemDataRepository) Create(d *models.SystemData) error {
	const q = `
		INSERT INTO system_data (
			product_id, soil_moisture, water_usage_today, temperature,
			humidity, system_status, last_watering, next_watering
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, recorded_at
	`
	if err := r.DB.QueryRow(q,
		d.ProductID, d.SoilMoisture, d.WaterUsageToday, d.Temperature,
		d.Humidity, d.SystemStatus, d.LastWatering, d.NextWatering,
	).Scan(&d.ID, &d.RecordedAt); err != nil {
		return fmt.Errorf("create system data: %w", err)
	}
	return nil
}

func (r *systemDataRepository) GetLatest(productID string) (*models.SystemData, error) {
	const q = `
		SELECT id, product_id, soil_moisture, water_usage_today, temperature,
		       humidity, system_status, last_watering, next_watering, recorded_at
		FROM system_data
		WHERE product_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	d := &models.SystemData{}
	err := r.DB.QueryRow(q, productID).Scan(
		&d.ID, &d.ProductID, &d.SoilMoisture, &d.WaterUsageToday, &d.Temperature,
		&d.Humidity, &d.SystemStatus, &d.LastWatering, &d.NextWatering, &d.RecordedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest system data: %w", err)
	}
	return d, nil
}

func (r *systemDataRepository) GetHistory(productID string, days int) ([]*models.SystemData, error) {
	const q = `
		SELECT id, product_id, soil_moisture, water_usage_today, temperature,
		       humidity, system_status, last_watering, next_watering, recorded_at
		FROM system_data
		WHERE product_id = $1 AND recorded_at >= NOW() - ($2 || ' days')::interval
		ORDER BY recorded_at DESC
	`
	rows, err := r.DB.Query(q, productID, days)
	if err != nil {
		return nil, fmt.Errorf("system data history: %w", err)
	}
	defer rows.Close()

	var readings []*models.SystemData
	for rows.Next() {
		d := &models.SystemData{}
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.SoilMoisture, &d.WaterUsageToday, &d.Temperature,
			&d.Humidity, &d.SystemStatus, &d.LastWatering, &d.NextWatering, &d.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan system data row: %w", err)
		}
		readings = append(readings, d)
	}
	return readings, rows.Err()
}

func (r *systemDataRepository) GetAverages(productID string, days int) (*models.SystemDataAverage, error) {
	const q = `
		SELECT AVG(soil_moisture), AVG(temperature), AVG(humidity), SUM(water_usage_today)
		FROM system_data
		WHERE product_id = $1 AND recorded_at >= NOW() - ($2 || ' days')::interval
	`
	a := &models.SystemDataAverage{}
	if err := r.DB.QueryRow(q, productID, days).Scan(
		&a.AvgSoilMoisture, &a.AvgTemperature, &a.AvgHumidity, &a.TotalWaterUsage,
	); err != nil {
		return nil, fmt.Errorf("system data averages: %w", err)
	}
	return a, nil
}

// GetSystemStats aggregates every reading from the last 24 hours.
func (r *systemDataRepository) GetSystemStats() (*models.SystemStats, error) {
	const q = `
		SELECT AVG(soil_moisture), AVG(temperature), AVG(humidity),
		       SUM(water_usage_today), COUNT(DISTINCT product_id)
		FROM system_data
		WHERE recorded_at >= NOW() - INTERVAL '24 hours'
	`
	s := &models.SystemStats{}
	if err := r.DB.QueryRow(q).Scan(
		&s.AvgSoilMoisture, &s.AvgTemperature, &s.AvgHumidity,
		&s.TotalWaterUsage, &s.ActiveSystems,
	); err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	return s, nil
}

// GetSystemHealth checks the most recent reading per product for error
// states, dry soil and overheating.
func (r *systemDataRepository) GetSystemHealth() (*models.SystemHealth, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE system_status = 'error'),
		       COUNT(*) FILTER (WHERE soil_moisture < 20),
		       COUNT(*) FILTER (WHERE temperature > 40)
		FROM (
			SELECT DISTINCT ON (product_id) system_status, soil_moisture, temperature
			FROM system_data
			ORDER BY product_id, recorded_at DESC
		) latest
	`
	h := &models.SystemHealth{}
	if err := r.DB.QueryRow(q).Scan(
		&h.TotalSystems, &h.ErrorSystems, &h.LowMoistureSystems, &h.HighTempSystems,
	); err != nil {
		return nil, fmt.Errorf("system health: %w", err)
	}
	return h, nil
}
