package services

import (
	"errors"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
)

var ErrCropNotFound = errors.New("crop not found")

// CropUpdate: nil means keep the current value.
type CropUpdate struct {
	CropName         *string
	PlantingDate     *string
	GrowthStage      *string
	WateringSchedule *string
}

type CropService struct {
	repo repositories.CropRepository
}

func NewCropService(repo repositories.CropRepository) *CropService {
	return &CropService{repo: repo}
}

func (s *CropService) ListByUser(userID int) ([]*models.Crop, error) {
	return s.repo.GetByUserID(userID)
}

func (s *CropService) Create(c *models.Crop) error {
	if c.GrowthStage == "" {
		c.GrowthStage = "seedling"
	}
	return s.repo.Create(c)
}

func (s *CropService) Update(id, userID int, upd CropUpdate) error {
	crop, err := s.repo.GetByID(id, userID)
	if err != nil {
		return err
	}
	if crop == nil {
		return ErrCropNotFound
	}

	if upd.CropName != nil {
		crop.CropName = *upd.CropName
	}
	if upd.PlantingDate != nil {
		crop.PlantingDate = *upd.PlantingDate
	}
	if upd.GrowthStage != nil {
		crop.GrowthStage = *upd.GrowthStage
	}
	if upd.WateringSchedule != nil {
		crop.WateringSchedule = upd.WateringSchedule
	}
	return s.repo.Update(crop)
}

func (s *CropService) Delete(id, userID int) error {
	deleted, err := s.repo.Delete(id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCropNotFound
	}
	return nil
}
