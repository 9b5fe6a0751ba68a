package scheduling

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
)

const (
	slotStartHour = 8
	slotCount     = 15
	// slotAvailableOdds is the chance a generated slot is bookable.
	slotAvailableOdds = 0.7
)

// MockAdapter provides synthetic availability for local development. Day
// counts follow an arbitrary day-of-month formula and slot availability is
// random; neither is a business rule. Callers memoize slot lists per screen
// session so patients never see them reshuffle.
type MockAdapter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockAdapter creates a mock scheduling provider.
func NewMockAdapter() providers.SchedulingProvider {
	return &MockAdapter{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewMockAdapterWithSeed creates a mock provider with reproducible slot
// randomness, for tests.
func NewMockAdapterWithSeed(seed int64) providers.SchedulingProvider {
	return &MockAdapter{rng: rand.New(rand.NewSource(seed))}
}

// GetDateRange returns one entry per day in [from, to]. Days of month
// divisible by 7 are fully booked; the rest get ((d % 5) + 1) * 2 openings.
func (m *MockAdapter) GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range")
	}

	from = entities.Day(from)
	to = entities.Day(to)
	dates := make([]entities.AppointmentDate, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		avail := 0
		if dom := d.Day(); dom%7 != 0 {
			avail = ((dom % 5) + 1) * 2
		}
		dates = append(dates, entities.AppointmentDate{Date: d, AvailableAppointments: avail})
	}

	return dates, nil
}

// GetTimeSlots returns 15 hourly slots from 08:00 through 22:00, each with a
// ~70% chance of being bookable.
func (m *MockAdapter) GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slots := make([]entities.TimeSlot, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		slots = append(slots, entities.TimeSlot{
			Time:        fmt.Sprintf("%02d:00", slotStartHour+i),
			IsAvailable: m.rng.Float64() < slotAvailableOdds,
		})
	}
	return slots, nil
}

// CreateReservation returns a mock booking reference.
func (m *MockAdapter) CreateReservation(ctx context.Context, appointment *entities.Appointment) (string, error) {
	return fmt.Sprintf("mock-%d", time.Now().UnixNano()), nil
}

// CancelReservation is a no-op for the mock provider.
func (m *MockAdapter) CancelReservation(ctx context.Context, externalID string, reason string) error {
	return nil
}
