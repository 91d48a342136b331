package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/BornToCode265/ADIS/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
	UpdateProfile(user *models.User) error
	SetAdmin(userID int, isAdmin bool) error
	List() ([]*models.User, error)
	GetStats() (*models.UserStats, error)
	RecentRegistrations(limit int) ([]*models.User, error)
	RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, phone, username, password_hash,
	village, traditional_authority, district, latitude, longitude,
	is_admin, created_at
`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Phone, &u.Username, &u.PasswordHash,
		&u.Village, &u.TraditionalAuthority, &u.District, &u.Latitude, &u.Longitude,
		&u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			name, phone, username, password_hash,
			village, traditional_authority, district, latitude, longitude
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.Name, user.Phone, user.Username, user.PasswordHash,
		user.Village, user.TraditionalAuthority, user.District, user.Latitude, user.Longitude,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	return r.scanUser(r.DB.QueryRow(q, phone))
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.DB.QueryRow(q, username))
}

func (r *userRepository) UsernameExists(username string) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	if err := r.DB.QueryRow(q, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("username exists: %w", err)
	}
	return exists, nil
}

// UpdateProfile only touches the mutable fields; phone and username are
// fixed at registration.
func (r *userRepository) UpdateProfile(user *models.User) error {
	const q = `
		UPDATE users
		SET name = $1, village = $2, traditional_authority = $3,
		    district = $4, latitude = $5, longitude = $6, updated_at = NOW()
		WHERE id = $7
	`
	if _, err := r.DB.Exec(q,
		user.Name, user.Village, user.TraditionalAuthority,
		user.District, user.Latitude, user.Longitude, user.ID,
	); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *userRepository) SetAdmin(userID int, isAdmin bool) error {
	if _, err := r.DB.Exec(`UPDATE users SET is_admin = $1 WHERE id = $2`, isAdmin, userID); err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	return nil
}

func (r *userRepository) List() ([]*models.User, error) {
	const q = `
		SELECT id, name, phone, username, village, traditional_authority,
		       district, is_admin, created_at
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Phone, &u.Username, &u.Village, &u.TraditionalAuthority,
			&u.District, &u.IsAdmin, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetStats() (*models.UserStats, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_admin),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days'),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM users
	`
	s := &models.UserStats{}
	if err := r.DB.QueryRow(q).Scan(&s.TotalUsers, &s.AdminUsers, &s.NewUsers30Days, &s.NewUsers7Days); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return s, nil
}

func (r *userRepository) RecentRegistrations(limit int) ([]*models.User, error) {
	const q = `
		SELECT id, name, phone, username, village, traditional_authority,
		       district, is_admin, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("recent registrations: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Phone, &u.Username, &u.Village, &u.TraditionalAuthority,
			&u.District, &u.IsAdmin, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recent registration: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	const q = `
		SELECT name, created_at
		FROM users
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.Query(q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent user activity: %w", err)
	}
	defer rows.Close()

	var items []*models.ActivityItem
	for rows.Next() {
		var name string
		var at time.Time
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("scan user activity: %w", err)
		}
		items = append(items, &models.ActivityItem{
			Type:        "user_registration",
			Description: name,
			Timestamp:   at,
		})
	}
	return items, rows.Err()
}
