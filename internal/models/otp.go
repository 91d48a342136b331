package models

import "time"

// OTPVerification is one row per issued code. Rows are never deleted;
// consumed codes keep IsUsed=true as an audit trail.
type OTPVerification struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	OTPCode   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}
