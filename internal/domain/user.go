package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered journal user.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultUsername is used in single-password mode and when auth is disabled.
const DefaultUsername = "default"
