package services

import (
	"errors"
	"log"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTicketDenied   = errors.New("access denied")
)

type TicketService struct {
	repo   repositories.TicketRepository
	emails EmailService
}

func NewTicketService(repo repositories.TicketRepository, emails EmailService) *TicketService {
	return &TicketService{repo: repo, emails: emails}
}

func (s *TicketService) ListByUser(userID int) ([]*models.SupportTicket, error) {
	return s.repo.GetByUserID(userID)
}

func (s *TicketService) Create(t *models.SupportTicket, userName string) error {
	t.Status = models.TicketStatusOpen
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if err := s.repo.Create(t); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendTicketNotification(t, userName); err != nil {
			// warn but do not fail creation
			log.Printf("[support][create] notification email failed for ticket=%d: %v", t.ID, err)
		}
	}
	return nil
}

// UpdateStatus lets a ticket's owner or an admin move it through the
// open -> in_progress -> resolved -> closed lifecycle.
func (s *TicketService) UpdateStatus(ticketID, callerID int, callerIsAdmin bool, status string) error {
	ticket, err := s.repo.GetByID(ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	if ticket.UserID != callerID && !callerIsAdmin {
		return ErrTicketDenied
	}
	return s.repo.UpdateStatus(ticketID, status)
}
