package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/services"
)

type CropHandler struct {
	cropService *services.CropService
}

func NewCropHandler(cropService *services.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

func (h *CropHandler) List(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	crops, err := h.cropService.ListByUser(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load crops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Crops retrieved successfully",
		"data":    crops,
	})
}

type createCropRequest struct {
	CropName         string  `json:"crop_name" binding:"required"`
	PlantingDate     string  `json:"planting_date" binding:"required"`
	GrowthStage      string  `json:"growth_stage"`
	WateringSchedule *string `json:"watering_schedule"`
}

func (h *CropHandler) Create(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req createCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Crop name and planting date are required"})
		return
	}
	if req.GrowthStage != "" && !models.ValidGrowthStage(req.GrowthStage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid growth stage"})
		return
	}

	crop := &models.Crop{
		UserID:           claims.UserID,
		CropName:         req.CropName,
		PlantingDate:     req.PlantingDate,
		GrowthStage:      req.GrowthStage,
		WateringSchedule: req.WateringSchedule,
	}
	if err := h.cropService.Create(crop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create crop"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Crop added successfully",
		"data":    crop,
	})
}

type updateCropRequest struct {
	CropName         *string `json:"crop_name"`
	PlantingDate     *string `json:"planting_date"`
	GrowthStage      *string `json:"growth_stage"`
	WateringSchedule *string `json:"watering_schedule"`
}

func (h *CropHandler) Update(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	cropID, err := strconv.Atoi(c.Param("cropId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop ID"})
		return
	}

	var req updateCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GrowthStage != nil && !models.ValidGrowthStage(*req.GrowthStage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid growth stage"})
		return
	}

	err = h.cropService.Update(cropID, claims.UserID, services.CropUpdate{
		CropName:         req.CropName,
		PlantingDate:     req.PlantingDate,
		GrowthStage:      req.GrowthStage,
		WateringSchedule: req.WateringSchedule,
	})
	if err != nil {
		if errors.Is(err, services.ErrCropNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update crop"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Crop updated successfully"})
}

func (h *CropHandler) Delete(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	cropID, err := strconv.Atoi(c.Param("cropId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop ID"})
		return
	}

	if err := h.cropService.Delete(cropID, claims.UserID); err != nil {
		if errors.Is(err, services.ErrCropNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete crop"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Crop deleted successfully"})
}
