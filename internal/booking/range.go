// Package booking implements the reservation flow state: date range
// resolution, the sliding date navigator, the step wizard, and the booking
// screen session that ties them together. Everything here is plain in-memory
// state; availability data comes from a scheduling provider and the session
// itself is persisted by the caller.
package booking

import (
	"regexp"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/locale"
)

const (
	// DefaultRangeDays is the window length applied when no end date is
	// given: from .. from+30.
	DefaultRangeDays = 30

	// MaxRangeDays bounds the generated sequence length.
	MaxRangeDays = 365
)

// dayPattern is the only accepted shape for user-supplied dates. Values that
// don't match fall back to defaults without surfacing an error.
var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDayParam parses a user-supplied date string. Digits in Persian or
// Arabic-Indic numerals are normalized first, so a date rendered in one
// numeral system round-trips regardless of the active display language.
func ParseDayParam(raw string) (time.Time, bool) {
	raw = locale.NormalizeDigits(raw)
	if !dayPattern.MatchString(raw) {
		return time.Time{}, false
	}
	day, err := entities.ParseDay(raw)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// ResolveRange turns raw fromDate/toDate parameters into an inclusive
// [from, to] day range. Malformed values fail closed: an unusable from
// becomes today, an unusable or out-of-order to becomes from+30 days. The
// range never exceeds MaxRangeDays days.
func ResolveRange(fromRaw, toRaw string, today time.Time) (from, to time.Time) {
	today = entities.Day(today)

	from, ok := ParseDayParam(fromRaw)
	if !ok {
		from = today
	}

	to, ok = ParseDayParam(toRaw)
	if !ok || to.Before(from) {
		to = from.AddDate(0, 0, DefaultRangeDays)
	}

	if max := from.AddDate(0, 0, MaxRangeDays-1); to.After(max) {
		to = max
	}
	return from, to
}

// RangeLength returns the number of days in the inclusive [from, to] range.
func RangeLength(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}
