package repositories

import (
	"database/sql"
	"fmt"

	"github.com/BornToCode265/ADIS/internal/models"
)

type CropRepository interface {
	Create(c *models.Crop) error
	GetByUserID(userID int) ([]*models.Crop, error)
	GetByID(id, userID int) (*models.Crop, error)
	Update(c *models.Crop) error
	Delete(id, userID int) (bool, error)
}

type cropRepository struct {
	DB *sql.DB
}

func NewCropRepository(db *sql.DB) CropRepository {
	return &cropRepository{DB: db}
}

func (r *cropRepository) Create(c *models.Crop) error {
	const q = `
		INSERT INTO crops (user_id, crop_name, planting_date, growth_stage, watering_schedule)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		c.UserID, c.CropName, c.PlantingDate, c.GrowthStage, c.WateringSchedule,
	).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create crop: %w", err)
	}
	return nil
}

func (r *cropRepository) GetByUserID(userID int) ([]*models.Crop, error) {
	const q = `
		SELECT id, user_id, crop_name, planting_date::text, growth_stage, watering_schedule, created_at
		FROM crops
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("crops by user: %w", err)
	}
	defer rows.Close()

	var crops []*models.Crop
	for rows.Next() {
		c := &models.Crop{}
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.CropName, &c.PlantingDate, &c.GrowthStage,
			&c.WateringSchedule, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan crop row: %w", err)
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

// GetByID is owner-scoped: a crop that belongs to somebody else looks
// like it does not exist.
func (r *cropRepository) GetByID(id, userID int) (*models.Crop, error) {
	const q = `
		SELECT id, user_id, crop_name, planting_date::text, growth_stage, watering_schedule, created_at
		FROM crops
		WHERE id = $1 AND user_id = $2
	`
	c := &models.Crop{}
	err := r.DB.QueryRow(q, id, userID).Scan(
		&c.ID, &c.UserID, &c.CropName, &c.PlantingDate, &c.GrowthStage,
		&c.WateringSchedule, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("crop by id: %w", err)
	}
	return c, nil
}

func (r *cropRepository) Update(c *models.Crop) error {
	const q = `
		UPDATE crops
		SET crop_name = $1, planting_date = $2, growth_stage = $3, watering_schedule = $4
		WHERE id = $5 AND user_id = $6
	`
	if _, err := r.DB.Exec(q,
		c.CropName, c.PlantingDate, c.GrowthStage, c.WateringSchedule, c.ID, c.UserID,
	); err != nil {
		return fmt.Errorf("update crop: %w", err)
	}
	return nil
}

func (r *cropRepository) Delete(id, userID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM crops WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete crop: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete crop rows: %w", err)
	}
	return n > 0, nil
}
