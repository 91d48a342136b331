package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/BornToCode265/ADIS/internal/models"
)

type TicketRepository interface {
	Create(t *models.SupportTicket) error
	GetByUserID(userID int) ([]*models.SupportTicket, error)
	GetAll() ([]*models.SupportTicket, error)
	GetByID(id int) (*models.SupportTicket, error)
	UpdateStatus(id int, status string) error
	GetStats() (*models.TicketStats, error)
	RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error)
}

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{DB: db}
}

func (r *ticketRepository) Create(t *models.SupportTicket) error {
	const q = `
		INSERT INTO support_tickets (user_id, product_id, subject, description, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		t.UserID, t.ProductID, t.Subject, t.Description, t.Status, t.Priority,
	).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *ticketRepository) GetByUserID(userID int) ([]*models.SupportTicket, error) {
	const q = `
		SELECT st.id, st.user_id, st.product_id, st.subject, st.description,
		       st.status, st.priority, st.created_at, st.updated_at, COALESCE(u.name, '')
		FROM support_tickets st
		LEFT JOIN users u ON st.user_id = u.id
		WHERE st.user_id = $1
		ORDER BY st.created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("tickets by user: %w", err)
	}
	defer rows.Close()
	return scanTickets(rows, false)
}

func (r *ticketRepository) GetAll() ([]*models.SupportTicket, error) {
	const q = `
		SELECT st.id, st.user_id, st.product_id, st.subject, st.description,
		       st.status, st.priority, st.created_at, st.updated_at,
		       COALESCE(u.name, ''), COALESCE(u.phone, '')
		FROM support_tickets st
		LEFT JOIN users u ON st.user_id = u.id
		ORDER BY st.created_at DESC
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("all tickets: %w", err)
	}
	defer rows.Close()
	return scanTickets(rows, true)
}

func scanTickets(rows *sql.Rows, withPhone bool) ([]*models.SupportTicket, error) {
	var tickets []*models.SupportTicket
	for rows.Next() {
		t := &models.SupportTicket{}
		dest := []interface{}{
			&t.ID, &t.UserID, &t.ProductID, &t.Subject, &t.Description,
			&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt, &t.UserName,
		}
		if withPhone {
			dest = append(dest, &t.UserPhone)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) GetByID(id int) (*models.SupportTicket, error) {
	const q = `
		SELECT st.id, st.user_id, st.product_id, st.subject, st.description,
		       st.status, st.priority, st.created_at, st.updated_at,
		       COALESCE(u.name, ''), COALESCE(u.phone, '')
		FROM support_tickets st
		LEFT JOIN users u ON st.user_id = u.id
		WHERE st.id = $1
	`
	t := &models.SupportTicket{}
	err := r.DB.QueryRow(q, id).Scan(
		&t.ID, &t.UserID, &t.ProductID, &t.Subject, &t.Description,
		&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt, &t.UserName, &t.UserPhone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ticket by id: %w", err)
	}
	return t, nil
}

func (r *ticketRepository) UpdateStatus(id int, status string) error {
	const q = `
		UPDATE support_tickets
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := r.DB.Exec(q, status, id); err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	return nil
}

func (r *ticketRepository) GetStats() (*models.TicketStats, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'open'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'resolved'),
			COUNT(*) FILTER (WHERE status = 'closed')
		FROM support_tickets
	`
	s := &models.TicketStats{}
	if err := r.DB.QueryRow(q).Scan(
		&s.TotalTickets, &s.OpenTickets, &s.InProgressTickets, &s.ResolvedTickets, &s.ClosedTickets,
	); err != nil {
		return nil, fmt.Errorf("ticket stats: %w", err)
	}
	return s, nil
}

func (r *ticketRepository) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	const q = `
		SELECT subject, created_at
		FROM support_tickets
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.Query(q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent ticket activity: %w", err)
	}
	defer rows.Close()

	var items []*models.ActivityItem
	for rows.Next() {
		var subject string
		var at time.Time
		if err := rows.Scan(&subject, &at); err != nil {
			return nil, fmt.Errorf("scan ticket activity: %w", err)
		}
		items = append(items, &models.ActivityItem{
			Type:        "support_ticket",
			Description: fmt.Sprintf("Ticket: %s", subject),
			Timestamp:   at,
		})
	}
	return items, rows.Err()
}
