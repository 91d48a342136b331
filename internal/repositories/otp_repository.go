package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

type OTPRepository interface {
	Create(phone, code string, expiresAt time.Time) (int64, error)
	Consume(phone, code string, now time.Time) (bool, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

// Create inserts one row per issued code. Outstanding codes for the same
// phone stay untouched.
func (r *otpRepository) Create(phone, code string, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO otp_verifications (phone, otp_code, expires_at, is_used)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRow(q, phone, code, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("create otp: %w", err)
	}
	return id, nil
}

// Consume flips is_used on the most recent matching, unused, unexpired
// code and reports whether this call was the one that flipped it. The
// check and the write are a single statement, so two concurrent calls
// with the same code cannot both succeed.
func (r *otpRepository) Consume(phone, code string, now time.Time) (bool, error) {
	const q = `
		UPDATE otp_verifications
		SET is_used = TRUE
		WHERE id = (
			SELECT id FROM otp_verifications
			WHERE phone = $1 AND otp_code = $2 AND is_used = FALSE AND expires_at > $3
			ORDER BY created_at DESC
			LIMIT 1
		)
	`
	res, err := r.DB.Exec(q, phone, code, now)
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume otp rows: %w", err)
	}
	return n == 1, nil
}
