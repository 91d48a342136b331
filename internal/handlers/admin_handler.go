package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/pdf"
	"github.com/BornToCode265/ADIS/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
	reports      pdf.ReportGenerator
}

func NewAdminHandler(adminService *services.AdminService, reports pdf.ReportGenerator) *AdminHandler {
	return &AdminHandler{adminService: adminService, reports: reports}
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

type updateUserStatusRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req updateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_admin is required"})
		return
	}

	if err := h.adminService.SetUserAdmin(userID, *req.IsAdmin); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *AdminHandler) Products(c *gin.Context) {
	products, err := h.adminService.ListProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

func (h *AdminHandler) Tickets(c *gin.Context) {
	tickets, err := h.adminService.ListTickets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets retrieved successfully",
		"data":    tickets,
	})
}

func (h *AdminHandler) UpdateTicketStatus(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticketId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	if !models.ValidTicketStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: open, in_progress, resolved, closed"})
		return
	}

	if err := h.adminService.UpdateTicketStatus(ticketID, req.Status); err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated successfully"})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.adminService.Analytics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Analytics retrieved successfully",
		"data":    analytics,
	})
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Overview retrieved successfully",
		"data":    overview,
	})
}

// OverviewReport streams the system overview as a PDF attachment.
func (h *AdminHandler) OverviewReport(c *gin.Context) {
	overview, err := h.adminService.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	report, err := h.reports.GenerateOverview(pdf.OverviewReport{
		TotalUsers:     overview.TotalUsers,
		TotalProducts:  overview.TotalProducts,
		ActiveProducts: overview.ActiveProducts,
		TotalTickets:   overview.TotalTickets,
		OpenTickets:    overview.OpenTickets,
		Health:         overview.SystemHealth,
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("adis-overview-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", report)
}
