package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Data(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	data, err := h.dashboardService.GetData(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard data retrieved successfully",
		"data":    data,
	})
}

func (h *DashboardHandler) Analytics(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	analytics, err := h.dashboardService.GetAnalytics(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Analytics retrieved successfully",
		"data":    analytics,
	})
}
