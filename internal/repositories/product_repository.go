package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/BornToCode265/ADIS/internal/models"
)

type ProductRepository interface {
	Create(p *models.Product) error
	Exists(productID string) (bool, error)
	GetByUserID(userID int) ([]*models.Product, error)
	GetByProductID(productID string, userID int) (*models.Product, error)
	UpdateStatus(productID, status string) error
	GetAll() ([]*models.Product, error)
	GetStats() (*models.ProductStats, error)
	RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) Create(p *models.Product) error {
	const q = `
		INSERT INTO products (product_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, registration_date
	`
	if err := r.DB.QueryRow(q, p.ProductID, p.UserID, p.Status).Scan(&p.ID, &p.RegistrationDate); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *productRepository) Exists(productID string) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`
	if err := r.DB.QueryRow(q, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// GetByUserID returns the caller's devices, each joined with its latest
// telemetry reading (nulls when the device has never reported).
func (r *productRepository) GetByUserID(userID int) ([]*models.Product, error) {
	const q = `
		SELECT p.id, p.product_id, p.user_id, p.registration_date, p.status,
		       sd.soil_moisture, sd.water_usage_today, sd.temperature, sd.humidity,
		       sd.system_status, sd.last_watering, sd.next_watering
		FROM products p
		LEFT JOIN LATERAL (
			SELECT soil_moisture, water_usage_today, temperature, humidity,
			       system_status, last_watering, next_watering
			FROM system_data
			WHERE product_id = p.product_id
			ORDER BY recorded_at DESC
			LIMIT 1
		) sd ON TRUE
		WHERE p.user_id = $1
		ORDER BY p.registration_date DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("products by user: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.UserID, &p.RegistrationDate, &p.Status,
			&p.SoilMoisture, &p.WaterUsageToday, &p.Temperature, &p.Humidity,
			&p.SystemStatus, &p.LastWatering, &p.NextWatering,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByProductID scopes to the owner; callers get nil for devices they
// do not own.
func (r *productRepository) GetByProductID(productID string, userID int) (*models.Product, error) {
	const q = `
		SELECT id, product_id, user_id, registration_date, status
		FROM products
		WHERE product_id = $1 AND user_id = $2
	`
	p := &models.Product{}
	err := r.DB.QueryRow(q, productID, userID).Scan(&p.ID, &p.ProductID, &p.UserID, &p.RegistrationDate, &p.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("product by id: %w", err)
	}
	return p, nil
}

func (r *productRepository) UpdateStatus(productID, status string) error {
	if _, err := r.DB.Exec(`UPDATE products SET status = $1 WHERE product_id = $2`, status, productID); err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	return nil
}

func (r *productRepository) GetAll() ([]*models.Product, error) {
	const q = `
		SELECT p.id, p.product_id, p.user_id, p.registration_date, p.status,
		       COALESCE(u.name, ''), COALESCE(u.phone, '')
		FROM products p
		LEFT JOIN users u ON p.user_id = u.id
		ORDER BY p.registration_date DESC
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("all products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.UserID, &p.RegistrationDate, &p.Status,
			&p.UserName, &p.UserPhone,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) GetStats() (*models.ProductStats, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE status = 'maintenance'),
			COUNT(*) FILTER (WHERE registration_date >= NOW() - INTERVAL '30 days')
		FROM products
	`
	s := &models.ProductStats{}
	if err := r.DB.QueryRow(q).Scan(
		&s.TotalProducts, &s.ActiveProducts, &s.InactiveProducts,
		&s.MaintenanceProducts, &s.NewProducts30Days,
	); err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return s, nil
}

func (r *productRepository) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	const q = `
		SELECT product_id, registration_date
		FROM products
		WHERE registration_date >= $1
		ORDER BY registration_date DESC
		LIMIT $2
	`
	rows, err := r.DB.Query(q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent product activity: %w", err)
	}
	defer rows.Close()

	var items []*models.ActivityItem
	for rows.Next() {
		var pid string
		var at time.Time
		if err := rows.Scan(&pid, &at); err != nil {
			return nil, fmt.Errorf("scan product activity: %w", err)
		}
		items = append(items, &models.ActivityItem{
			Type:        "product_registration",
			Description: fmt.Sprintf("Product %s registered", pid),
			Timestamp:   at,
		})
	}
	return items, rows.Err()
}
