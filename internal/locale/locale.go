// Package locale holds language handling shared across the booking surface:
// supported language codes, text direction, digit normalization, and
// calendar-aware date rendering.
package locale

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Language is a supported UI language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguagePersian Language = "fa"
	LanguageArabic  Language = "ar"
)

// DefaultLanguage is used when a request carries no usable language.
const DefaultLanguage = LanguageEnglish

// Parse maps a raw language tag to a supported Language, defaulting to
// English. Region subtags ("fa-IR") are tolerated.
func Parse(raw string) Language {
	if len(raw) >= 2 {
		switch raw[:2] {
		case "fa":
			return LanguagePersian
		case "ar":
			return LanguageArabic
		case "en":
			return LanguageEnglish
		}
	}
	return DefaultLanguage
}

// Direction is the text direction of a language.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// DirectionOf returns the text direction for a language. Direction is
// presentation metadata only: ordering of data never changes with it.
func DirectionOf(lang Language) Direction {
	if lang == LanguagePersian || lang == LanguageArabic {
		return DirectionRTL
	}
	return DirectionLTR
}

// FormatDate renders a calendar day for display in the given language:
// Jalali for Persian, Gregorian otherwise (Arabic included).
func FormatDate(day time.Time, lang Language) string {
	if lang == LanguagePersian {
		pt := ptime.New(day)
		return pt.Format("yyyy/MM/dd")
	}
	return day.Format("2006-01-02")
}

// FormatDateLong renders a calendar day with weekday and month names, e.g.
// "Monday, 16 February 2026" or its Jalali equivalent.
func FormatDateLong(day time.Time, lang Language) string {
	if lang == LanguagePersian {
		pt := ptime.New(day)
		return pt.Format("E d MMM yyyy")
	}
	return day.Format("Monday, 2 January 2006")
}
