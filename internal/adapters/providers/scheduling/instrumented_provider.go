package scheduling

import (
	"context"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/infrastructure/observability"
)

// InstrumentedProvider wraps a scheduling provider with call-duration
// metrics.
type InstrumentedProvider struct {
	next    providers.SchedulingProvider
	metrics *observability.Metrics
}

// NewInstrumentedProvider wraps the provider. A nil metrics handle returns
// the provider unwrapped.
func NewInstrumentedProvider(next providers.SchedulingProvider, metrics *observability.Metrics) providers.SchedulingProvider {
	if metrics == nil {
		return next
	}
	return &InstrumentedProvider{next: next, metrics: metrics}
}

func (p *InstrumentedProvider) GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	start := time.Now()
	dates, err := p.next.GetDateRange(ctx, schedulingID, from, to)
	observability.RecordProviderMetric(ctx, p.metrics, "get_date_range", time.Since(start))
	return dates, err
}

func (p *InstrumentedProvider) GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	start := time.Now()
	slots, err := p.next.GetTimeSlots(ctx, schedulingID, day)
	observability.RecordProviderMetric(ctx, p.metrics, "get_time_slots", time.Since(start))
	return slots, err
}

func (p *InstrumentedProvider) CreateReservation(ctx context.Context, appointment *entities.Appointment) (string, error) {
	start := time.Now()
	externalID, err := p.next.CreateReservation(ctx, appointment)
	observability.RecordProviderMetric(ctx, p.metrics, "create_reservation", time.Since(start))
	return externalID, err
}

func (p *InstrumentedProvider) CancelReservation(ctx context.Context, externalID string, reason string) error {
	start := time.Now()
	err := p.next.CancelReservation(ctx, externalID, reason)
	observability.RecordProviderMetric(ctx, p.metrics, "cancel_reservation", time.Since(start))
	return err
}
