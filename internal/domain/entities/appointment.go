package entities

import (
	"encoding/json"
	"time"
)

// AppointmentStatus tracks the lifecycle of a reservation.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a committed reservation: a user, a service, the chosen
// address, and the chosen day and time.
type Appointment struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	ServiceID    string            `json:"service_id"`
	AddressIndex int               `json:"address_index"`
	Date         time.Time         `json:"-"`
	Time         string            `json:"time"` // "HH:MM", 24-hour
	Status       AppointmentStatus `json:"status"`

	// ExternalID is the reservation identifier assigned by the scheduling
	// provider, used for later cancellation.
	ExternalID string `json:"external_id,omitempty"`

	// SchedulingID is the provider-side identifier of the booked service,
	// carried for the provider call and not persisted.
	SchedulingID string `json:"-"`

	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Notes        string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanCancel reports whether the appointment is still active.
func (a *Appointment) CanCancel() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// MarshalJSON renders Date in canonical YYYY-MM-DD form alongside the other
// fields.
func (a Appointment) MarshalJSON() ([]byte, error) {
	type alias Appointment
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(a), FormatDay(a.Date)})
}
