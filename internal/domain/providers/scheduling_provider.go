package providers

import (
	"context"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
)

// AvailabilityProvider defines the interface for external scheduling services
// that answer availability questions for a bookable service.
type AvailabilityProvider interface {
	// GetDateRange returns one entry per calendar day in [from, to],
	// inclusive, with the number of bookable appointments on each day.
	GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error)

	// GetTimeSlots returns the bookable times on the given day.
	GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error)
}

// ReservationProvider defines the interface for committing and cancelling
// reservations on the external scheduling service.
type ReservationProvider interface {
	// CreateReservation books the appointment with the provider and returns
	// the provider's reservation identifier.
	CreateReservation(ctx context.Context, appointment *entities.Appointment) (externalID string, err error)

	// CancelReservation cancels a reservation on the provider
	CancelReservation(ctx context.Context, externalID string, reason string) error
}

// SchedulingProvider is the full scheduling integration surface.
type SchedulingProvider interface {
	AvailabilityProvider
	ReservationProvider
}
