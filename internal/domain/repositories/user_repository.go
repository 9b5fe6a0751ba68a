package repositories

import (
	"context"

	"github.com/careseek/booking-backend/internal/domain/entities"
)

// UserRepository defines the interface for patient account persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetByPhone retrieves a user by E.164 phone number
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)

	// Update updates a user's profile fields
	Update(ctx context.Context, user *entities.User) error

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
