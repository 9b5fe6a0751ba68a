package booking

import (
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

// Step discriminates the wizard's state. Each step carries only the
// selections that are valid for it: a time step always has a resolved date
// and address behind it.
type Step string

const (
	StepDate    Step = "date"
	StepAddress Step = "address"
	StepTime    Step = "time"
)

// Wizard is the three-step reservation flow over a fixed date sequence and a
// service's address list. It is a finite-state machine: transitions are the
// methods, and every method rejects calls from the wrong step.
type Wizard struct {
	Step Step `json:"step"`

	SelectedDateIndex    *int    `json:"selected_date_index,omitempty"`
	SelectedAddressIndex *int    `json:"selected_address_index,omitempty"`
	SelectedTime         *string `json:"selected_time,omitempty"`

	// AddressAutoAssigned is set when the service has a single address and
	// the address step was skipped. Back from the time step then returns to
	// the date step.
	AddressAutoAssigned bool `json:"address_auto_assigned,omitempty"`

	// NoAvailabilityDate holds the date of a rejected zero-availability
	// selection, driving the "no appointments this day" affordance.
	NoAvailabilityDate *string `json:"no_availability_date,omitempty"`
}

// NewWizard returns a wizard at the date-selection step.
func NewWizard() Wizard {
	return Wizard{Step: StepDate}
}

// SelectedDate returns the selected date from the sequence, if any.
func (w *Wizard) SelectedDate(dates []entities.AppointmentDate) (entities.AppointmentDate, bool) {
	if w.SelectedDateIndex == nil || *w.SelectedDateIndex < 0 || *w.SelectedDateIndex >= len(dates) {
		return entities.AppointmentDate{}, false
	}
	return dates[*w.SelectedDateIndex], true
}

// SelectDate handles picking a day from the sequence. A day with no
// availability keeps the wizard on the date step and raises the
// no-availability notice; a bookable day moves to address selection, or
// straight to time selection when the service has a single address.
func (w *Wizard) SelectDate(service *entities.Service, dates []entities.AppointmentDate, index int) error {
	if w.Step != StepDate {
		return apperrors.NewConflictError("date can only be selected at the date step")
	}
	if index < 0 || index >= len(dates) {
		return apperrors.NewValidationError("date index out of range")
	}

	day := dates[index]
	if !day.HasAvailability() {
		key := entities.FormatDay(day.Date)
		w.NoAvailabilityDate = &key
		w.SelectedDateIndex = nil
		return nil
	}

	w.SelectedDateIndex = &index
	w.NoAvailabilityDate = nil

	if service.HasMultipleAddresses() {
		w.Step = StepAddress
		return nil
	}
	zero := 0
	w.SelectedAddressIndex = &zero
	w.AddressAutoAssigned = true
	w.Step = StepTime
	return nil
}

// NextAvailable resolves the "no appointments this day" affordance: it finds
// the next later date with availability and selects it. When no later date
// qualifies, it falls back to the date in the whole sequence with
// availability that is nearest to today by absolute day distance. Returns the
// chosen index, or an error when the sequence has no availability at all.
func (w *Wizard) NextAvailable(service *entities.Service, dates []entities.AppointmentDate, today time.Time) (int, error) {
	if w.Step != StepDate || w.NoAvailabilityDate == nil {
		return 0, apperrors.NewConflictError("no zero-availability date is pending")
	}

	rejected, err := entities.ParseDay(*w.NoAvailabilityDate)
	if err != nil {
		return 0, apperrors.NewInternalError("corrupt wizard state", err)
	}

	chosen := -1
	for i, d := range dates {
		if d.Date.After(rejected) && d.HasAvailability() {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		chosen = nearestToToday(dates, today)
	}
	if chosen < 0 {
		return 0, apperrors.NewNotFoundError("no available dates in range")
	}

	w.NoAvailabilityDate = nil
	if err := w.SelectDate(service, dates, chosen); err != nil {
		return 0, err
	}
	return chosen, nil
}

// nearestToToday returns the index of the available date closest to today by
// absolute day distance, or -1 when none has availability. Ties resolve to
// the earlier date.
func nearestToToday(dates []entities.AppointmentDate, today time.Time) int {
	today = entities.Day(today)
	best, bestDist := -1, 0
	for i, d := range dates {
		if !d.HasAvailability() {
			continue
		}
		dist := int(d.Date.Sub(today).Hours() / 24)
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// SelectAddress records the patient's address choice. Only valid at the
// address step; confirmation is a separate transition.
func (w *Wizard) SelectAddress(service *entities.Service, index int) error {
	if w.Step != StepAddress {
		return apperrors.NewConflictError("address can only be selected at the address step")
	}
	if _, ok := service.AddressAt(index); !ok {
		return apperrors.NewValidationError("address index out of range")
	}
	w.SelectedAddressIndex = &index
	return nil
}

// ConfirmAddress moves to the time step. Enabled only once an address is
// chosen.
func (w *Wizard) ConfirmAddress() error {
	if w.Step != StepAddress {
		return apperrors.NewConflictError("address can only be confirmed at the address step")
	}
	if w.SelectedAddressIndex == nil {
		return apperrors.NewValidationError("no address selected")
	}
	w.Step = StepTime
	return nil
}

// SelectTime records the chosen slot. The slot must exist in the given list
// and be available.
func (w *Wizard) SelectTime(slots []entities.TimeSlot, slotTime string) error {
	if w.Step != StepTime {
		return apperrors.NewConflictError("time can only be selected at the time step")
	}
	for _, s := range slots {
		if s.Time == slotTime {
			if !s.IsAvailable {
				return apperrors.NewConflictError("time slot is not available")
			}
			w.SelectedTime = &slotTime
			return nil
		}
	}
	return apperrors.NewValidationError("unknown time slot")
}

// Back steps the wizard backward, discarding the selections made at and
// after the step being left. From the time step it returns to the address
// step, or to the date step when the address was auto-assigned.
func (w *Wizard) Back() error {
	switch w.Step {
	case StepTime:
		w.SelectedTime = nil
		if w.AddressAutoAssigned {
			w.SelectedAddressIndex = nil
			w.AddressAutoAssigned = false
			w.SelectedDateIndex = nil
			w.Step = StepDate
			return nil
		}
		w.Step = StepAddress
		return nil
	case StepAddress:
		w.SelectedAddressIndex = nil
		w.SelectedDateIndex = nil
		w.Step = StepDate
		return nil
	}
	return apperrors.NewConflictError("already at the first step")
}

// Complete reports whether a date, address, and time have all been chosen.
func (w *Wizard) Complete() bool {
	return w.Step == StepTime && w.SelectedDateIndex != nil &&
		w.SelectedAddressIndex != nil && w.SelectedTime != nil
}
