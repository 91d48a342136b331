package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
	"github.com/BornToCode265/ADIS/internal/services"
)

// maxDocumentSize caps training material uploads at 50 MB.
const maxDocumentSize = 50 << 20

type SupportHandler struct {
	ticketService *services.TicketService
	userService   services.UserService
	documents     repositories.DocumentRepository
	filesRoot     string
}

func NewSupportHandler(
	ticketService *services.TicketService,
	userService services.UserService,
	documents repositories.DocumentRepository,
	filesRoot string,
) *SupportHandler {
	return &SupportHandler{
		ticketService: ticketService,
		userService:   userService,
		documents:     documents,
		filesRoot:     filesRoot,
	}
}

func (h *SupportHandler) MyTickets(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.ListByUser(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets retrieved successfully",
		"data":    tickets,
	})
}

type createTicketRequest struct {
	Subject     string  `json:"subject" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ProductID   *string `json:"product_id"`
	Priority    string  `json:"priority"`
}

// @Summary      Open a support ticket
// @Tags         Support
// @Accept       json
// @Produce      json
// @Param        request  body      createTicketRequest  true  "Ticket details"
// @Success      201      {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/support/tickets [post]
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and description are required"})
		return
	}
	if req.Priority != "" && !models.ValidTicketPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority. Must be one of: low, medium, high, urgent"})
		return
	}

	userName := ""
	if user, err := h.userService.GetProfile(claims.UserID); err == nil {
		userName = user.Name
	}

	ticket := &models.SupportTicket{
		UserID:      claims.UserID,
		ProductID:   req.ProductID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if err := h.ticketService.Create(ticket, userName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Support ticket created successfully",
		"data":    ticket,
	})
}

type updateTicketRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *SupportHandler) UpdateTicket(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

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

	err = h.ticketService.UpdateStatus(ticketID, claims.UserID, claims.IsAdmin, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		case errors.Is(err, services.ErrTicketDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated successfully"})
}

// ListDocuments serves the public training library. No auth: farmers
// browse guides before registering.
func (h *SupportHandler) ListDocuments(c *gin.Context) {
	docs, err := h.documents.ListPublic()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Documents retrieved successfully",
		"data":    docs,
	})
}

func (h *SupportHandler) UploadDocument(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	fileType := c.PostForm("file_type")
	if !models.ValidDocumentType(fileType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Must be one of: pdf, video, image, manual"})
		return
	}

	// Existing clients post the upload under "document"; "file" is
	// accepted as an alias.
	file, err := c.FormFile("document")
	if err != nil {
		file, err = c.FormFile("file")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if file.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 50MB limit"})
		return
	}

	if err := os.MkdirAll(h.filesRoot, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	storedPath := filepath.Join(h.filesRoot, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	doc := &models.Document{
		Title:       title,
		FileName:    file.Filename,
		FilePath:    storedPath,
		FileSize:    file.Size,
		FileType:    fileType,
		Description: c.PostForm("description"),
		IsPublic:    c.PostForm("is_public") != "false",
	}
	if err := h.documents.Create(doc); err != nil {
		os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Document uploaded successfully",
		"data":    doc,
	})
}
