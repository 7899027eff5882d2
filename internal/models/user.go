package models

import "time"

// User represents a user in the system
type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // Not serialized
	EmailVerified    bool      `json:"email_verified"`
	VerificationCode string    `json:"-"`
	ResetCode        string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
