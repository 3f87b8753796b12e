// Package admin holds the back-office user accounts that authenticate
// against the admin API.
package admin

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nordstad/booking-backend/internal/domain"
)

// Admin is a back-office account. Only the bcrypt hash of the password is
// ever stored.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAdmin validates and creates an admin account from a username and an
// already-computed password hash.
func NewAdmin(username, passwordHash string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, domain.NewValidationError("username must be at least 3 characters")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	return &Admin{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Repository stores admin accounts.
type Repository interface {
	// FindByUsername retrieves an admin by exact username.
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	// Create persists a new admin; a duplicate username is a conflict.
	Create(ctx context.Context, a *Admin) error
}
