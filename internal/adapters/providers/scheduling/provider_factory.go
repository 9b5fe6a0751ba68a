package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/upstream"
)

// ErrMissingSchedulingID indicates the service has no scheduling identifier
// configured.
var ErrMissingSchedulingID = errors.New("scheduling id is required")

// ProviderConfig configures scheduling providers.
type ProviderConfig struct {
	// Provider selects the integration: "mock" or "upstream".
	Provider string

	// Client is the upstream API client, required when Provider is "upstream".
	Client *upstream.Client

	// AllowMockFallback falls back to synthetic availability when the
	// upstream call fails or the service carries no scheduling id.
	AllowMockFallback bool
}

// NewSchedulingProvider creates the configured provider, with optional mock
// fallback.
func NewSchedulingProvider(cfg ProviderConfig) providers.SchedulingProvider {
	if cfg.Provider != "upstream" || cfg.Client == nil {
		return NewMockAdapter()
	}

	primary := NewUpstreamAdapter(cfg.Client)
	if !cfg.AllowMockFallback {
		return primary
	}
	return &FallbackProvider{
		primary:  primary,
		fallback: NewMockAdapter(),
	}
}

// FallbackProvider wraps a primary provider with mock fallback for reads.
// Writes never fall back: a reservation either commits upstream or fails.
type FallbackProvider struct {
	primary  providers.SchedulingProvider
	fallback providers.SchedulingProvider
}

func (p *FallbackProvider) GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	if schedulingID == "" {
		return p.fallback.GetDateRange(ctx, schedulingID, from, to)
	}
	dates, err := p.primary.GetDateRange(ctx, schedulingID, from, to)
	if err != nil {
		return p.fallback.GetDateRange(ctx, schedulingID, from, to)
	}
	return dates, nil
}

func (p *FallbackProvider) GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	if schedulingID == "" {
		return p.fallback.GetTimeSlots(ctx, schedulingID, day)
	}
	slots, err := p.primary.GetTimeSlots(ctx, schedulingID, day)
	if err != nil {
		return p.fallback.GetTimeSlots(ctx, schedulingID, day)
	}
	return slots, nil
}

func (p *FallbackProvider) CreateReservation(ctx context.Context, appointment *entities.Appointment) (string, error) {
	if appointment.SchedulingID == "" {
		return "", ErrMissingSchedulingID
	}
	return p.primary.CreateReservation(ctx, appointment)
}

func (p *FallbackProvider) CancelReservation(ctx context.Context, externalID string, reason string) error {
	return p.primary.CancelReservation(ctx, externalID, reason)
}
