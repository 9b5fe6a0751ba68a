package services

import (
	"regexp"
	"strings"

	"github.com/careseek/booking-backend/internal/locale"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// e164Pattern matches international phone numbers: +, then 2..15 digits
	// with a non-zero leading digit.
	e164Pattern    = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	passwordLetter = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit  = regexp.MustCompile(`[0-9]`)
	// passwordSpecial and passwordAllowed pin the accepted punctuation set.
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	passwordAllowed = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]*$`)
)

// ValidatePassword checks the account password rules. It returns an empty
// string when the password is acceptable, otherwise the inline message for
// the password field.
func ValidatePassword(password string) string {
	switch {
	case len(password) < 8:
		return "Password must be at least 8 characters."
	case strings.ContainsAny(password, " \t\n\r"):
		return "Password must not contain spaces."
	case !passwordLetter.MatchString(password):
		return "Password must contain an English letter."
	case !passwordDigit.MatchString(password):
		return "Password must contain a number."
	case !passwordSpecial.MatchString(password):
		return "Password must contain a special character."
	case !passwordAllowed.MatchString(password):
		return "Password must only contain English letters, numbers, and special characters."
	}
	return ""
}

// NormalizePhone normalizes localized digits and validates the result as
// E.164. Returns the normalized number and whether it is valid.
func NormalizePhone(raw string) (string, bool) {
	phone := strings.TrimSpace(locale.NormalizeDigits(raw))
	return phone, e164Pattern.MatchString(phone)
}

// ValidEmail reports whether the address is plausibly an email.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
