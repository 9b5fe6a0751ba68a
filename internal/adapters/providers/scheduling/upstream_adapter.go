package scheduling

import (
	"context"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/upstream"
	"github.com/careseek/booking-backend/internal/locale"
)

// UpstreamAdapter implements the scheduling provider against the marketplace
// scheduling API. The request language rides in on the context.
type UpstreamAdapter struct {
	client *upstream.Client
}

// NewUpstreamAdapter creates a scheduling provider backed by the upstream
// API client.
func NewUpstreamAdapter(client *upstream.Client) providers.SchedulingProvider {
	return &UpstreamAdapter{client: client}
}

func (a *UpstreamAdapter) GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	return a.client.GetDateRange(ctx, locale.FromContext(ctx), schedulingID, from, to)
}

func (a *UpstreamAdapter) GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	return a.client.GetTimeSlots(ctx, locale.FromContext(ctx), schedulingID, day)
}

func (a *UpstreamAdapter) CreateReservation(ctx context.Context, appointment *entities.Appointment) (string, error) {
	return a.client.CreateReservation(ctx, locale.FromContext(ctx), appointment.SchedulingID, appointment)
}

func (a *UpstreamAdapter) CancelReservation(ctx context.Context, externalID string, reason string) error {
	return a.client.CancelReservation(ctx, locale.FromContext(ctx), externalID, reason)
}
