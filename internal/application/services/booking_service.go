package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/careseek/booking-backend/internal/booking"
	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/locale"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

const screenKeyPrefix = "screen:"

// BookingService orchestrates booking screen sessions: it resolves the date
// range, fetches availability from the scheduling provider, drives the wizard
// through the store-persisted screen, and commits the reservation.
type BookingService struct {
	services     repositories.ServiceRepository
	appointments repositories.AppointmentRepository
	provider     providers.SchedulingProvider
	store        providers.StoreProvider
	screenTTL    time.Duration
	now          func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(services repositories.ServiceRepository, appointments repositories.AppointmentRepository, provider providers.SchedulingProvider, store providers.StoreProvider, screenTTL time.Duration) *BookingService {
	return &BookingService{
		services:     services,
		appointments: appointments,
		provider:     provider,
		store:        store,
		screenTTL:    screenTTL,
		now:          time.Now,
	}
}

// CreateScreen opens a booking screen for a service. fromRaw and toRaw are
// the raw date query parameters; malformed or missing values fall back to a
// today-anchored 31-day range.
func (s *BookingService) CreateScreen(ctx context.Context, serviceID, fromRaw, toRaw string) (*booking.Screen, error) {
	service, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	from, to := booking.ResolveRange(fromRaw, toRaw, today)

	dates, err := s.provider.GetDateRange(ctx, service.SchedulingID, from, to)
	if err != nil {
		return nil, err
	}

	screen := booking.NewScreen(service.ID, locale.FromContext(ctx), from, to, dates)
	if err := s.saveScreen(ctx, screen); err != nil {
		return nil, err
	}
	return screen, nil
}

// GetScreen loads a screen session from the store.
func (s *BookingService) GetScreen(ctx context.Context, screenID string) (*booking.Screen, error) {
	raw, err := s.store.Get(ctx, screenKeyPrefix+screenID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("booking screen not found or expired")
	}
	var screen booking.Screen
	if err := json.Unmarshal(raw, &screen); err != nil {
		return nil, apperrors.NewInternalError("corrupt booking screen record", err)
	}
	return &screen, nil
}

// UpdateRange re-resolves the screen's date range from raw parameters and
// refetches availability. The wizard restarts; cached slots are kept.
func (s *BookingService) UpdateRange(ctx context.Context, screenID, fromRaw, toRaw string) (*booking.Screen, error) {
	screen, err := s.GetScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	service, err := s.services.GetByID(ctx, screen.ServiceID)
	if err != nil {
		return nil, err
	}

	from, to := booking.ResolveRange(fromRaw, toRaw, s.today())
	dates, err := s.provider.GetDateRange(ctx, service.SchedulingID, from, to)
	if err != nil {
		return nil, err
	}

	screen.ResetDates(from, to, dates)
	if err := s.saveScreen(ctx, screen); err != nil {
		return nil, err
	}
	return screen, nil
}

// PageForward advances the navigator window by one page.
func (s *BookingService) PageForward(ctx context.Context, screenID string) (*booking.Screen, error) {
	return s.mutate(ctx, screenID, func(screen *booking.Screen) error {
		screen.Navigator.PageForward()
		return nil
	})
}

// PageBackward moves the navigator window back by one page.
func (s *BookingService) PageBackward(ctx context.Context, screenID string) (*booking.Screen, error) {
	return s.mutate(ctx, screenID, func(screen *booking.Screen) error {
		screen.Navigator.PageBackward()
		return nil
	})
}

// SelectDate picks a day from the screen's date sequence.
func (s *BookingService) SelectDate(ctx context.Context, screenID string, index int) (*booking.Screen, error) {
	return s.mutateWithService(ctx, screenID, func(screen *booking.Screen, service *entities.Service) error {
		return screen.Wizard.SelectDate(service, screen.Dates, index)
	})
}

// NextAvailable jumps to the next date with availability after a rejected
// zero-availability selection, moving the navigator so the date is visible.
func (s *BookingService) NextAvailable(ctx context.Context, screenID string) (*booking.Screen, error) {
	return s.mutateWithService(ctx, screenID, func(screen *booking.Screen, service *entities.Service) error {
		index, err := screen.Wizard.NextAvailable(service, screen.Dates, s.today())
		if err != nil {
			return err
		}
		screen.Navigator.StartIndex = min(index, max(0, screen.Navigator.Length-booking.VisibleCount))
		return nil
	})
}

// SelectAddress picks one of the service's addresses.
func (s *BookingService) SelectAddress(ctx context.Context, screenID string, index int) (*booking.Screen, error) {
	return s.mutateWithService(ctx, screenID, func(screen *booking.Screen, service *entities.Service) error {
		return screen.Wizard.SelectAddress(service, index)
	})
}

// ConfirmAddress locks the selected address and moves to time selection.
func (s *BookingService) ConfirmAddress(ctx context.Context, screenID string) (*booking.Screen, error) {
	return s.mutate(ctx, screenID, func(screen *booking.Screen) error {
		return screen.Wizard.ConfirmAddress()
	})
}

// TimeSlots returns the slots for the wizard's selected date, fetching from
// the provider on first access and memoizing on the screen afterwards.
func (s *BookingService) TimeSlots(ctx context.Context, screenID string) ([]entities.TimeSlot, error) {
	screen, err := s.GetScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	date, ok := screen.Wizard.SelectedDate(screen.Dates)
	if !ok {
		return nil, apperrors.NewConflictError("no date selected")
	}

	if slots, ok := screen.CachedSlots(date.Date); ok {
		return slots, nil
	}

	service, err := s.services.GetByID(ctx, screen.ServiceID)
	if err != nil {
		return nil, err
	}
	slots, err := s.provider.GetTimeSlots(ctx, service.SchedulingID, date.Date)
	if err != nil {
		return nil, err
	}

	slots = screen.CacheSlots(date.Date, slots)
	if err := s.saveScreen(ctx, screen); err != nil {
		return nil, err
	}
	return slots, nil
}

// SelectTime picks a time slot for the selected date.
func (s *BookingService) SelectTime(ctx context.Context, screenID, slotTime string) (*booking.Screen, error) {
	return s.mutate(ctx, screenID, func(screen *booking.Screen) error {
		date, ok := screen.Wizard.SelectedDate(screen.Dates)
		if !ok {
			return apperrors.NewConflictError("no date selected")
		}
		slots, ok := screen.CachedSlots(date.Date)
		if !ok {
			return apperrors.NewConflictError("time slots not loaded for the selected date")
		}
		return screen.Wizard.SelectTime(slots, slotTime)
	})
}

// Back steps the wizard back one step.
func (s *BookingService) Back(ctx context.Context, screenID string) (*booking.Screen, error) {
	return s.mutate(ctx, screenID, func(screen *booking.Screen) error {
		return screen.Wizard.Back()
	})
}

// ConfirmPayload carries the patient details for the final commit.
type ConfirmPayload struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Notes        string `json:"notes,omitempty"`
}

// Confirm commits the completed wizard: it books the reservation with the
// scheduling provider, persists the appointment as pending, and retires the
// screen session.
func (s *BookingService) Confirm(ctx context.Context, screenID, userID string, payload ConfirmPayload) (*entities.Appointment, error) {
	screen, err := s.GetScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if !screen.Wizard.Complete() {
		return nil, apperrors.NewConflictError("booking selections are incomplete")
	}

	phone, ok := NormalizePhone(payload.PatientPhone)
	if !ok {
		return nil, apperrors.NewFieldValidationError("booking failed validation", map[string]string{
			"patient_phone": "A valid international phone number is required.",
		})
	}

	service, err := s.services.GetByID(ctx, screen.ServiceID)
	if err != nil {
		return nil, err
	}
	date, _ := screen.Wizard.SelectedDate(screen.Dates)

	now := s.now().UTC()
	appointment := &entities.Appointment{
		ID:           uuid.New().String(),
		UserID:       userID,
		ServiceID:    service.ID,
		AddressIndex: *screen.Wizard.SelectedAddressIndex,
		Date:         date.Date,
		Time:         *screen.Wizard.SelectedTime,
		Status:       entities.AppointmentStatusPending,
		SchedulingID: service.SchedulingID,
		PatientName:  payload.PatientName,
		PatientPhone: phone,
		Notes:        payload.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	externalID, err := s.provider.CreateReservation(ctx, appointment)
	if err != nil {
		return nil, err
	}
	appointment.ExternalID = externalID

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	// The screen is done; expiry would reap it anyway.
	_ = s.store.Delete(ctx, screenKeyPrefix+screen.ID)

	return appointment, nil
}

// CancelAppointment cancels a pending or confirmed appointment with the
// provider and records the new status.
func (s *BookingService) CancelAppointment(ctx context.Context, appointmentID, userID, reason string) error {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment.UserID != userID {
		return apperrors.NewNotFoundError("appointment not found")
	}
	if !appointment.CanCancel() {
		return apperrors.NewConflictError("appointment is already cancelled")
	}

	if appointment.ExternalID != "" {
		if err := s.provider.CancelReservation(ctx, appointment.ExternalID, reason); err != nil {
			return err
		}
	}
	return s.appointments.UpdateStatus(ctx, appointmentID, entities.AppointmentStatusCancelled)
}

// ListAppointments returns a page of the user's appointments, newest first.
func (s *BookingService) ListAppointments(ctx context.Context, userID string, limit, offset int) ([]*entities.Appointment, error) {
	if limit <= 0 {
		limit = FeedPageSize
	}
	return s.appointments.ListByUser(ctx, userID, limit, offset)
}

func (s *BookingService) mutate(ctx context.Context, screenID string, fn func(*booking.Screen) error) (*booking.Screen, error) {
	screen, err := s.GetScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if err := fn(screen); err != nil {
		return nil, err
	}
	if err := s.saveScreen(ctx, screen); err != nil {
		return nil, err
	}
	return screen, nil
}

func (s *BookingService) mutateWithService(ctx context.Context, screenID string, fn func(*booking.Screen, *entities.Service) error) (*booking.Screen, error) {
	screen, err := s.GetScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	service, err := s.services.GetByID(ctx, screen.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := fn(screen, service); err != nil {
		return nil, err
	}
	if err := s.saveScreen(ctx, screen); err != nil {
		return nil, err
	}
	return screen, nil
}

func (s *BookingService) saveScreen(ctx context.Context, screen *booking.Screen) error {
	screen.Touch()
	raw, err := json.Marshal(screen)
	if err != nil {
		return apperrors.NewInternalError("failed to encode booking screen", err)
	}
	return s.store.Set(ctx, screenKeyPrefix+screen.ID, raw, s.screenTTL)
}

func (s *BookingService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
