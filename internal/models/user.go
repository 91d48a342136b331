package models

import "time"

type User struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"name"`
	Phone                string     `json:"phone"`
	Username             string     `json:"username"`
	PasswordHash         string     `json:"-"`
	Village              *string    `json:"village,omitempty"`
	TraditionalAuthority *string    `json:"traditional_authority,omitempty"`
	District             string     `json:"district"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Longitude            *float64   `json:"longitude,omitempty"`
	IsAdmin              bool       `json:"is_admin"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"-"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
