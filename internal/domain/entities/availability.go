package entities

import (
	"encoding/json"
	"time"
)

// DayFormat is the canonical wire format for calendar dates. Dates are
// timezone-naive: 2026-02-08 means that calendar day wherever the patient is.
const DayFormat = "2006-01-02"

// Day normalizes t to midnight UTC so values compare as calendar dates.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a canonical YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// FormatDay renders t as a canonical YYYY-MM-DD date.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// AppointmentDate is one calendar day in a service's availability window
// together with how many appointments remain bookable on it.
type AppointmentDate struct {
	Date                  time.Time `json:"-"`
	AvailableAppointments int       `json:"available_appointments"`
}

type appointmentDateJSON struct {
	Date                  string `json:"date"`
	AvailableAppointments int    `json:"available_appointments"`
}

// MarshalJSON renders the date in canonical YYYY-MM-DD form.
func (d AppointmentDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(appointmentDateJSON{
		Date:                  FormatDay(d.Date),
		AvailableAppointments: d.AvailableAppointments,
	})
}

// UnmarshalJSON parses the canonical YYYY-MM-DD form.
func (d *AppointmentDate) UnmarshalJSON(data []byte) error {
	var raw appointmentDateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day, err := ParseDay(raw.Date)
	if err != nil {
		return err
	}
	d.Date = day
	d.AvailableAppointments = raw.AvailableAppointments
	return nil
}

// HasAvailability reports whether at least one appointment can be booked.
func (d AppointmentDate) HasAvailability() bool {
	return d.AvailableAppointments > 0
}

// TimeSlot is one bookable time on a selected day.
type TimeSlot struct {
	Time        string `json:"time"` // "HH:MM", 24-hour
	IsAvailable bool   `json:"is_available"`
}
