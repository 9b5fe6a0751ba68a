// Package filters keeps the per-tab catalog filter state consistent with URL
// query parameters, bidirectionally. Tabs are mutually exclusive in the
// parameter space: the encoded query never carries another tab's keys.
package filters

import (
	"net/url"
	"regexp"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/locale"
)

// Query parameter keys. ParamCategory is the only key shared by every tab.
const (
	ParamCategory                 = "category"
	ParamSpecialty                = "specialty"
	ParamService                  = "service"
	ParamArea                     = "area"
	ParamInsurance                = "insurance"
	ParamDoctorSex                = "doctorSex"
	ParamNearestToLocation        = "nearestToLocation"
	ParamWithAvailableAppointment = "withAvailableAppointment"
	ParamFromDate                 = "fromDate"
	ParamToDate                   = "toDate"
)

// DefaultCategory is the tab shown when none is selected.
const DefaultCategory = entities.CategoryOffice

// DoctorSex filters by practitioner sex; "all" is the default and encodes as
// an absent parameter.
type DoctorSex string

const (
	DoctorSexAll    DoctorSex = "all"
	DoctorSexMale   DoctorSex = "male"
	DoctorSexFemale DoctorSex = "female"
)

// tabSchema lists the parameter keys each tab owns. Keys outside the active
// tab's schema are never read and never written.
var tabSchema = map[entities.ServiceCategory][]string{
	entities.CategoryOffice: {
		ParamSpecialty, ParamService, ParamArea, ParamInsurance, ParamDoctorSex,
		ParamNearestToLocation, ParamWithAvailableAppointment, ParamFromDate, ParamToDate,
	},
	entities.CategoryPhone: {
		ParamSpecialty, ParamWithAvailableAppointment, ParamFromDate, ParamToDate,
	},
	entities.CategoryText: {
		ParamSpecialty, ParamDoctorSex, ParamFromDate, ParamToDate,
	},
	entities.CategoryAI: {
		ParamSpecialty, ParamDoctorSex, ParamFromDate, ParamToDate,
	},
}

// SchemaKeys returns the parameter keys owned by a tab.
func SchemaKeys(cat entities.ServiceCategory) []string {
	return tabSchema[cat]
}

var isoDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDay folds localized digits in a day value and reports whether the
// result is a strict YYYY-MM-DD day.
func NormalizeDay(raw string) (string, bool) {
	normalized := locale.NormalizeDigits(raw)
	return normalized, isoDay.MatchString(normalized)
}

// State is one tab's filter record. Zero values are the defaults; DoctorSex
// defaults to "all" on the tabs that carry it.
type State struct {
	Category                 entities.ServiceCategory `json:"category"`
	Specialty                string                   `json:"specialty,omitempty"`
	Service                  string                   `json:"service,omitempty"`
	Area                     string                   `json:"area,omitempty"`
	Insurance                string                   `json:"insurance,omitempty"`
	DoctorSex                DoctorSex                `json:"doctor_sex,omitempty"`
	NearestToLocation        bool                     `json:"nearest_to_location,omitempty"`
	WithAvailableAppointment bool                     `json:"with_available_appointment,omitempty"`
	FromDate                 string                   `json:"from_date,omitempty"`
	ToDate                   string                   `json:"to_date,omitempty"`
}

// Defaults returns the default filter record for a tab.
func Defaults(cat entities.ServiceCategory) State {
	s := State{Category: cat}
	if hasKey(cat, ParamDoctorSex) {
		s.DoctorSex = DoctorSexAll
	}
	return s
}

func hasKey(cat entities.ServiceCategory, key string) bool {
	for _, k := range tabSchema[cat] {
		if k == key {
			return true
		}
	}
	return false
}

// ParseTab resolves the category parameter, falling back to the current
// selection when absent or unrecognized.
func ParseTab(q url.Values, current entities.ServiceCategory) entities.ServiceCategory {
	raw := entities.ServiceCategory(q.Get(ParamCategory))
	if entities.IsValidCategory(raw) {
		return raw
	}
	if entities.IsValidCategory(current) {
		return current
	}
	return entities.CategoryOffice
}

// Decode initializes a tab's filter record from query parameters. Booleans
// coerce as "1" = true, anything else false; date fields must match strict
// YYYY-MM-DD (after digit normalization) or are silently left at their
// default. Only keys in the active tab's schema are read.
func Decode(q url.Values, current entities.ServiceCategory) State {
	cat := ParseTab(q, current)
	s := Defaults(cat)

	for _, key := range tabSchema[cat] {
		if !q.Has(key) {
			continue
		}
		value := q.Get(key)
		switch key {
		case ParamNearestToLocation:
			s.NearestToLocation = value == "1"
		case ParamWithAvailableAppointment:
			s.WithAvailableAppointment = value == "1"
		case ParamFromDate, ParamToDate:
			normalized, ok := NormalizeDay(value)
			if !ok {
				continue
			}
			if key == ParamFromDate {
				s.FromDate = normalized
			} else {
				s.ToDate = normalized
			}
		case ParamSpecialty:
			s.Specialty = value
		case ParamService:
			s.Service = value
		case ParamArea:
			s.Area = value
		case ParamInsurance:
			s.Insurance = value
		case ParamDoctorSex:
			switch DoctorSex(value) {
			case DoctorSexAll, DoctorSexMale, DoctorSexFemale:
				s.DoctorSex = DoctorSex(value)
			}
		}
	}
	return s
}

// Encode writes the record through to query parameters: booleans emit "1"
// when true and disappear when false, empty strings disappear, everything
// else is set verbatim. DoctorSex "all" is a default and disappears. The
// category key is always written. The result contains only this tab's keys,
// which is what keeps tabs exclusive in the URL.
func (s State) Encode() url.Values {
	q := url.Values{}
	q.Set(ParamCategory, string(s.Category))

	setStr := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	for _, key := range tabSchema[s.Category] {
		switch key {
		case ParamSpecialty:
			setStr(key, s.Specialty)
		case ParamService:
			setStr(key, s.Service)
		case ParamArea:
			setStr(key, s.Area)
		case ParamInsurance:
			setStr(key, s.Insurance)
		case ParamDoctorSex:
			if s.DoctorSex != "" && s.DoctorSex != DoctorSexAll {
				q.Set(key, string(s.DoctorSex))
			}
		case ParamNearestToLocation:
			if s.NearestToLocation {
				q.Set(key, "1")
			}
		case ParamWithAvailableAppointment:
			if s.WithAvailableAppointment {
				q.Set(key, "1")
			}
		case ParamFromDate:
			setStr(key, s.FromDate)
		case ParamToDate:
			setStr(key, s.ToDate)
		}
	}
	return q
}

// SwitchTab resets both the outgoing and incoming tab to defaults and
// returns the new record plus a query carrying only the category key.
func SwitchTab(to entities.ServiceCategory) (State, url.Values) {
	s := Defaults(to)
	q := url.Values{}
	q.Set(ParamCategory, string(to))
	return s, q
}

// RepositoryFilter maps the record onto a catalog query.
func (s State) RepositoryFilter() repositories.ServiceFilter {
	f := repositories.ServiceFilter{
		Category:   s.Category,
		Specialty:  s.Specialty,
		ServiceID:  s.Service,
		Area:       s.Area,
		Insurance:  s.Insurance,
		ActiveOnly: true,
	}
	if s.DoctorSex != "" && s.DoctorSex != DoctorSexAll {
		f.DoctorSex = string(s.DoctorSex)
	}
	return f
}
