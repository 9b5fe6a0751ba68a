package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/locale"
)

// Screen is one patient's booking screen session for a single service: the
// resolved date range with availability, the navigator window, the wizard,
// and the per-date slot cache. It serializes to JSON for the session store
// and carries no live connections.
type Screen struct {
	ID        string          `json:"id"`
	ServiceID string          `json:"service_id"`
	Language  locale.Language `json:"language"`

	From  time.Time                  `json:"from"`
	To    time.Time                  `json:"to"`
	Dates []entities.AppointmentDate `json:"dates"`

	Navigator Navigator `json:"navigator"`
	Wizard    Wizard    `json:"wizard"`

	// Slots memoizes generated time slots per date key (YYYY-MM-DD) for the
	// lifetime of this screen, so re-renders never reshuffle availability a
	// patient has already seen.
	Slots map[string][]entities.TimeSlot `json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScreen builds a fresh screen session over an already-fetched date
// sequence.
func NewScreen(serviceID string, lang locale.Language, from, to time.Time, dates []entities.AppointmentDate) *Screen {
	now := time.Now().UTC()
	return &Screen{
		ID:        uuid.New().String(),
		ServiceID: serviceID,
		Language:  lang,
		From:      from,
		To:        to,
		Dates:     dates,
		Navigator: NewNavigator(len(dates)),
		Wizard:    NewWizard(),
		Slots:     make(map[string][]entities.TimeSlot),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ResetDates replaces the date sequence after a range change. The navigator
// and wizard restart; the slot cache is kept so already-seen dates stay
// stable within the session.
func (s *Screen) ResetDates(from, to time.Time, dates []entities.AppointmentDate) {
	s.From = from
	s.To = to
	s.Dates = dates
	s.Navigator = NewNavigator(len(dates))
	s.Wizard = NewWizard()
	s.UpdatedAt = time.Now().UTC()
}

// CachedSlots returns the memoized slots for a day, if generated before.
func (s *Screen) CachedSlots(day time.Time) ([]entities.TimeSlot, bool) {
	slots, ok := s.Slots[entities.FormatDay(day)]
	return slots, ok
}

// CacheSlots memoizes the slot list for a day. The first write wins: a day
// already cached is never overwritten.
func (s *Screen) CacheSlots(day time.Time, slots []entities.TimeSlot) []entities.TimeSlot {
	key := entities.FormatDay(day)
	if existing, ok := s.Slots[key]; ok {
		return existing
	}
	if s.Slots == nil {
		s.Slots = make(map[string][]entities.TimeSlot)
	}
	s.Slots[key] = slots
	s.UpdatedAt = time.Now().UTC()
	return slots
}

// VisibleDates returns the dates inside the navigator window.
func (s *Screen) VisibleDates() []entities.AppointmentDate {
	start, end := s.Navigator.Window()
	return s.Dates[start:end]
}

// Direction returns the screen's text direction. Presentation only: it
// mirrors the navigator arrows for right-to-left languages, nothing else.
func (s *Screen) Direction() locale.Direction {
	return locale.DirectionOf(s.Language)
}

// Touch bumps the session's update time.
func (s *Screen) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
