package services

import (
	"errors"
	"log"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/repositories"
)

var (
	ErrProductTaken    = errors.New("product already registered")
	ErrProductNotFound = errors.New("product not found")
)

// AlertNotifier pushes abnormal-telemetry alerts to the ops channel.
// Implementations must be nil-safe to call.
type AlertNotifier interface {
	TelemetryAlert(productID, message string) error
}

// ProductData is the full per-device view: info, latest reading, a week
// of history and monthly averages.
type ProductData struct {
	ProductInfo    *models.Product           `json:"product_info"`
	LatestData     *models.SystemData        `json:"latest_data"`
	HistoricalData []*models.SystemData      `json:"historical_data"`
	AverageData    *models.SystemDataAverage `json:"average_data"`
}

type ProductService struct {
	products repositories.ProductRepository
	data     repositories.SystemDataRepository
	notifier AlertNotifier
}

func NewProductService(products repositories.ProductRepository, data repositories.SystemDataRepository, notifier AlertNotifier) *ProductService {
	return &ProductService{products: products, data: data, notifier: notifier}
}

func (s *ProductService) Register(userID int, productID string) (*models.Product, error) {
	exists, err := s.products.Exists(productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProductTaken
	}

	p := &models.Product{
		ProductID: productID,
		UserID:    userID,
		Status:    models.ProductStatusActive,
	}
	if err := s.products.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) ListByUser(userID int) ([]*models.Product, error) {
	return s.products.GetByUserID(userID)
}

func (s *ProductService) GetData(userID int, productID string) (*ProductData, error) {
	product, err := s.products.GetByProductID(productID, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	latest, err := s.data.GetLatest(productID)
	if err != nil {
		return nil, err
	}
	history, err := s.data.GetHistory(productID, 7)
	if err != nil {
		return nil, err
	}
	averages, err := s.data.GetAverages(productID, 30)
	if err != nil {
		return nil, err
	}

	return &ProductData{
		ProductInfo:    product,
		LatestData:     latest,
		HistoricalData: history,
		AverageData:    averages,
	}, nil
}

func (s *ProductService) UpdateStatus(userID int, productID, status string) error {
	product, err := s.products.GetByProductID(productID, userID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.products.UpdateStatus(productID, status)
}

// Ingest records a telemetry reading from a field device. Alerting is
// best effort: a failed push never fails the ingest.
func (s *ProductService) Ingest(reading *models.SystemData) error {
	exists, err := s.products.Exists(reading.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	if err := s.data.Create(reading); err != nil {
		return err
	}

	s.alertIfAbnormal(reading)
	return nil
}

func (s *ProductService) alertIfAbnormal(d *models.SystemData) {
	if s.notifier == nil {
		return
	}
	if d.SystemStatus == "error" {
		if err := s.notifier.TelemetryAlert(d.ProductID, "system reported error status"); err != nil {
			log.Printf("[products][alert] push failed for product=%s: %v", d.ProductID, err)
		}
	}
	if d.SoilMoisture != nil && *d.SoilMoisture < 20 {
		if err := s.notifier.TelemetryAlert(d.ProductID, "soil moisture critically low"); err != nil {
			log.Printf("[products][alert] push failed for product=%s: %v", d.ProductID, err)
		}
	}
}
