package entities

import (
	"time"
)

// LocalizedText maps a language code ("en", "fa") to a rendered string.
// Lookups fall back to English when the requested language is missing.
type LocalizedText map[string]string

// In returns the text for the given language, falling back to English and
// then to any available value.
func (t LocalizedText) In(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t["en"]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// ServiceCategory identifies the consultation channel a service is offered
// through. A service belongs to exactly one category.
type ServiceCategory string

const (
	CategoryOffice ServiceCategory = "office"
	CategoryPhone  ServiceCategory = "phone"
	CategoryText   ServiceCategory = "text"
	CategoryAI     ServiceCategory = "ai"
)

// ValidCategories lists the selectable category tabs in display order.
var ValidCategories = []ServiceCategory{CategoryOffice, CategoryPhone, CategoryText, CategoryAI}

// IsValidCategory reports whether c names a known consultation channel.
func IsValidCategory(c ServiceCategory) bool {
	switch c {
	case CategoryOffice, CategoryPhone, CategoryText, CategoryAI:
		return true
	}
	return false
}

// Address is one bookable location of a service. Ordering within
// Service.Addresses is significant: it is the order shown to patients and the
// index patients select by.
type Address struct {
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
}

// Service is a bookable medical service as listed in the catalog: a doctor's
// office visit, a phone or text consultation, or an AI triage session.
type Service struct {
	ID          string          `json:"id"`
	Name        LocalizedText   `json:"name"`
	Description LocalizedText   `json:"description"`
	Image       string          `json:"image,omitempty"`
	Category    ServiceCategory `json:"category"`
	Specialty   string          `json:"specialty,omitempty"`
	DoctorSex   string          `json:"doctor_sex,omitempty"`
	Area        string          `json:"area,omitempty"`
	Insurances  []string        `json:"insurances,omitempty"`
	PriceUSD    float64         `json:"price_usd"`
	Addresses   []Address       `json:"addresses"`

	// SchedulingID is the identifier the scheduling provider knows this
	// service by. Empty for services without online booking.
	SchedulingID string `json:"scheduling_id,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMultipleAddresses reports whether the patient must choose between
// locations during booking. Single-address services skip that step.
func (s *Service) HasMultipleAddresses() bool {
	return len(s.Addresses) > 1
}

// AddressAt returns the address at the given zero-based index, or false when
// the index is out of range.
func (s *Service) AddressAt(idx int) (Address, bool) {
	if idx < 0 || idx >= len(s.Addresses) {
		return Address{}, false
	}
	return s.Addresses[idx], true
}
