package services

import (
	"sort"
	"time"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
)

type DashboardSummary struct {
	TotalProducts        int     `json:"total_products"`
	ActiveProducts       int     `json:"active_products"`
	TotalCrops           int     `json:"total_crops"`
	OpenTickets          int     `json:"open_tickets"`
	TotalWaterUsageToday float64 `json:"total_water_usage_today"`
}

type DashboardAlert struct {
	Type      string    `json:"type"`
	ProductID string    `json:"product_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type DashboardData struct {
	Summary       DashboardSummary                `json:"summary"`
	Products      []*models.Product               `json:"products"`
	Crops         []*models.Crop                  `json:"crops"`
	RecentTickets []*models.SupportTicket         `json:"recent_tickets"`
	SystemData    map[string][]*models.SystemData `json:"system_data"`
	Alerts        []DashboardAlert                `json:"alerts"`
}

type TrendPoint struct {
	Date      string   `json:"date"`
	ProductID string   `json:"product_id"`
	Value     *float64 `json:"value"`
}

type DashboardAnalytics struct {
	WaterUsageTrend   map[string]float64 `json:"water_usage_trend"`
	SoilMoistureTrend []TrendPoint       `json:"soil_moisture_trend"`
	TemperatureTrend  []TrendPoint       `json:"temperature_trend"`
}

type DashboardService struct {
	products repositories.ProductRepository
	crops    repositories.CropRepository
	tickets  repositories.TicketRepository
	data     repositories.SystemDataRepository
}

func NewDashboardService(
	products repositories.ProductRepository,
	crops repositories.CropRepository,
	tickets repositories.TicketRepository,
	data repositories.SystemDataRepository,
) *DashboardService {
	return &DashboardService{products: products, crops: crops, tickets: tickets, data: data}
}

func (s *DashboardService) GetData(userID int) (*DashboardData, error) {
	products, err := s.products.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	crops, err := s.crops.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	summary := DashboardSummary{
		TotalProducts: len(products),
		TotalCrops:    len(crops),
	}
	for _, p := range products {
		if p.Status == models.ProductStatusActive {
			summary.ActiveProducts++
		}
		if p.WaterUsageToday != nil {
			summary.TotalWaterUsageToday += *p.WaterUsageToday
		}
	}
	for _, t := range tickets {
		if t.Status == models.TicketStatusOpen {
			summary.OpenTickets++
		}
	}

	recentData := map[string][]*models.SystemData{}
	for _, p := range products {
		history, err := s.data.GetHistory(p.ProductID, 7)
		if err != nil {
			return nil, err
		}
		if len(history) > 0 {
			recentData[p.ProductID] = history
		}
	}

	recentTickets := tickets
	if len(recentTickets) > 5 {
		recentTickets = recentTickets[:5]
	}

	return &DashboardData{
		Summary:       summary,
		Products:      products,
		Crops:         crops,
		RecentTickets: recentTickets,
		SystemData:    recentData,
		Alerts:        buildAlerts(products),
	}, nil
}

// buildAlerts flags dry soil, error states and overheating from the
// latest snapshot of each product.
func buildAlerts(products []*models.Product) []DashboardAlert {
	now := time.Now()
	alerts := []DashboardAlert{}
	for _, p := range products {
		if p.SoilMoisture != nil && *p.SoilMoisture < 30 {
			alerts = append(alerts, DashboardAlert{
				Type:      "warning",
				ProductID: p.ProductID,
				Message:   "Low soil moisture detected",
				Timestamp: now,
			})
		}
		if p.SystemStatus != nil && *p.SystemStatus == "error" {
			alerts = append(alerts, DashboardAlert{
				Type:      "error",
				ProductID: p.ProductID,
				Message:   "System error detected",
				Timestamp: now,
			})
		}
		if p.Temperature != nil && *p.Temperature > 35 {
			alerts = append(alerts, DashboardAlert{
				Type:      "warning",
				ProductID: p.ProductID,
				Message:   "High temperature detected",
				Timestamp: now,
			})
		}
	}
	return alerts
}

func (s *DashboardService) GetAnalytics(userID int) (*DashboardAnalytics, error) {
	products, err := s.products.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	analytics := &DashboardAnalytics{
		WaterUsageTrend:   map[string]float64{},
		SoilMoistureTrend: []TrendPoint{},
		TemperatureTrend:  []TrendPoint{},
	}
	for _, p := range products {
		history, err := s.data.GetHistory(p.ProductID, 30)
		if err != nil {
			return nil, err
		}
		for _, d := range history {
			date := d.RecordedAt.Format("2006-01-02")
			if d.WaterUsageToday != nil {
				analytics.WaterUsageTrend[date] += *d.WaterUsageToday
			}
			analytics.SoilMoistureTrend = append(analytics.SoilMoistureTrend, TrendPoint{
				Date: date, ProductID: p.ProductID, Value: d.SoilMoisture,
			})
			analytics.TemperatureTrend = append(analytics.TemperatureTrend, TrendPoint{
				Date: date, ProductID: p.ProductID, Value: d.Temperature,
			})
		}
	}
	sort.Slice(analytics.SoilMoistureTrend, func(i, j int) bool {
		return analytics.SoilMoistureTrend[i].Date < analytics.SoilMoistureTrend[j].Date
	})
	sort.Slice(analytics.TemperatureTrend, func(i, j int) bool {
		return analytics.TemperatureTrend[i].Date < analytics.TemperatureTrend[j].Date
	})
	return analytics, nil
}
