package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/BornToCode265/ADIS/internal/models"
)

type EmailService interface {
	SendTicketNotification(ticket *models.SupportTicket, userName string) error
}

type emailService struct {
	dialer       *gomail.Dialer
	from         string
	supportInbox string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, supportInbox string) EmailService {
	return &emailService{
		dialer:       gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:         fromEmail,
		supportInbox: supportInbox,
	}
}

// SendTicketNotification tells the support team a new ticket landed.
// Farmers register with phone numbers only, so mail goes to the ops
// inbox rather than the customer.
func (s *emailService) SendTicketNotification(ticket *models.SupportTicket, userName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.supportInbox)
	m.SetHeader("Subject", fmt.Sprintf("[ADIS] New %s ticket #%d: %s", ticket.Priority, ticket.ID, ticket.Subject))

	body := fmt.Sprintf(`
		<h3>New support ticket</h3>
		<p><strong>From:</strong> %s (user #%d)</p>
		<p><strong>Priority:</strong> %s</p>
		<p><strong>Subject:</strong> %s</p>
		<p>%s</p>
	`, userName, ticket.UserID, ticket.Priority, ticket.Subject, ticket.Description)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket notification: %w", err)
	}
	return nil
}
