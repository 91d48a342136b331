package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/services"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type registerProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// @Summary      Register an irrigation unit
// @Description  Binds a physical device to the authenticated user
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        request  body      registerProductRequest  true  "Device serial"
// @Success      201      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/products/register [post]
func (h *ProductHandler) Register(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req registerProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	product, err := h.productService.Register(claims.UserID, req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product registered successfully",
		"data":    product,
	})
}

func (h *ProductHandler) MyProducts(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	products, err := h.productService.ListByUser(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

func (h *ProductHandler) GetData(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	productID := c.Param("productId")
	data, err := h.productService.GetData(claims.UserID, productID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product data retrieved successfully",
		"data":    data,
	})
}

type updateSettingsRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ProductHandler) UpdateSettings(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	if !models.ValidProductStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: active, inactive, maintenance"})
		return
	}

	productID := c.Param("productId")
	if err := h.productService.UpdateStatus(claims.UserID, productID, req.Status); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product settings updated successfully"})
}

type ingestDataRequest struct {
	ProductID       string   `json:"product_id" binding:"required"`
	SoilMoisture    *float64 `json:"soil_moisture"`
	WaterUsageToday *float64 `json:"water_usage_today"`
	Temperature     *float64 `json:"temperature"`
	Humidity        *float64 `json:"humidity"`
	SystemStatus    string   `json:"system_status"`
	LastWatering    *string  `json:"last_watering"`
	NextWatering    *string  `json:"next_watering"`
}

// IngestData accepts telemetry pushed by the devices themselves. Units
// authenticate by product serial only, so this route stays outside the
// token-protected group.
func (h *ProductHandler) IngestData(c *gin.Context) {
	var req ingestDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	reading := &models.SystemData{
		ProductID:       req.ProductID,
		SoilMoisture:    req.SoilMoisture,
		WaterUsageToday: req.WaterUsageToday,
		Temperature:     req.Temperature,
		Humidity:        req.Humidity,
		SystemStatus:    req.SystemStatus,
	}
	if reading.SystemStatus == "" {
		reading.SystemStatus = "active"
	}
	if req.LastWatering != nil {
		if t, err := time.Parse(time.RFC3339, *req.LastWatering); err == nil {
			reading.LastWatering = &t
		}
	}
	if req.NextWatering != nil {
		if t, err := time.Parse(time.RFC3339, *req.NextWatering); err == nil {
			reading.NextWatering = &t
		}
	}

	if err := h.productService.Ingest(reading); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store system data"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "System data recorded successfully"})
}
