package repositories

import (
	"context"

	"github.com/careseek/booking-backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for reservation persistence
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// ListByUser retrieves a user's appointments, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Appointment, error)

	// UpdateStatus transitions an appointment's status
	UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error
}
