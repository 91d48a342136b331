package services

import (
	"sort"
	"time"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
)

type AdminAnalytics struct {
	Users          *models.UserStats      `json:"users"`
	Products       *models.ProductStats   `json:"products"`
	Tickets        *models.TicketStats    `json:"tickets"`
	System         *models.SystemStats    `json:"system"`
	RecentActivity []*models.ActivityItem `json:"recent_activity"`
}

type SystemOverview struct {
	TotalUsers          int                  `json:"total_users"`
	TotalProducts       int                  `json:"total_products"`
	ActiveProducts      int                  `json:"active_products"`
	TotalTickets        int                  `json:"total_tickets"`
	OpenTickets         int                  `json:"open_tickets"`
	RecentRegistrations []*models.User       `json:"recent_registrations"`
	SystemHealth        *models.SystemHealth `json:"system_health"`
}

type AdminService struct {
	users    repositories.UserRepository
	products repositories.ProductRepository
	tickets  repositories.TicketRepository
	data     repositories.SystemDataRepository
}

func NewAdminService(
	users repositories.UserRepository,
	products repositories.ProductRepository,
	tickets repositories.TicketRepository,
	data repositories.SystemDataRepository,
) *AdminService {
	return &AdminService{users: users, products: products, tickets: tickets, data: data}
}

func (s *AdminService) ListUsers() ([]*models.User, error) {
	return s.users.List()
}

func (s *AdminService) SetUserAdmin(userID int, isAdmin bool) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.SetAdmin(userID, isAdmin)
}

func (s *AdminService) ListProducts() ([]*models.Product, error) {
	return s.products.GetAll()
}

func (s *AdminService) ListTickets() ([]*models.SupportTicket, error) {
	return s.tickets.GetAll()
}

func (s *AdminService) UpdateTicketStatus(ticketID int, status string) error {
	ticket, err := s.tickets.GetByID(ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	return s.tickets.UpdateStatus(ticketID, status)
}

func (s *AdminService) Analytics() (*AdminAnalytics, error) {
	userStats, err := s.users.GetStats()
	if err != nil {
		return nil, err
	}
	productStats, err := s.products.GetStats()
	if err != nil {
		return nil, err
	}
	ticketStats, err := s.tickets.GetStats()
	if err != nil {
		return nil, err
	}
	systemStats, err := s.data.GetSystemStats()
	if err != nil {
		return nil, err
	}
	activity, err := s.recentActivity()
	if err != nil {
		return nil, err
	}

	return &AdminAnalytics{
		Users:          userStats,
		Products:       productStats,
		Tickets:        ticketStats,
		System:         systemStats,
		RecentActivity: activity,
	}, nil
}

// recentActivity merges the last week of registrations, device
// activations and tickets into a single newest-first feed.
func (s *AdminService) recentActivity() ([]*models.ActivityItem, error) {
	since := time.Now().AddDate(0, 0, -7)

	items := []*models.ActivityItem{}
	userItems, err := s.users.RecentActivity(since, 5)
	if err != nil {
		return nil, err
	}
	items = append(items, userItems...)

	productItems, err := s.products.RecentActivity(since, 5)
	if err != nil {
		return nil, err
	}
	items = append(items, productItems...)

	ticketItems, err := s.tickets.RecentActivity(since, 5)
	if err != nil {
		return nil, err
	}
	items = append(items, ticketItems...)

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > 10 {
		items = items[:10]
	}
	return items, nil
}

func (s *AdminService) Overview() (*SystemOverview, error) {
	userStats, err := s.users.GetStats()
	if err != nil {
		return nil, err
	}
	productStats, err := s.products.GetStats()
	if err != nil {
		return nil, err
	}
	ticketStats, err := s.tickets.GetStats()
	if err != nil {
		return nil, err
	}
	recent, err := s.users.RecentRegistrations(5)
	if err != nil {
		return nil, err
	}
	health, err := s.data.GetSystemHealth()
	if err != nil {
		return nil, err
	}

	return &SystemOverview{
		TotalUsers:          userStats.TotalUsers,
		TotalProducts:       productStats.TotalProducts,
		ActiveProducts:      productStats.ActiveProducts,
		TotalTickets:        ticketStats.TotalTickets,
		OpenTickets:         ticketStats.OpenTickets,
		RecentRegistrations: recent,
		SystemHealth:        health,
	}, nil
}
