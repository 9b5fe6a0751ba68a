package locale

import "strings"

// NormalizeDigits maps Persian (U+06F0..U+06F9) and Arabic-Indic
// (U+0660..U+0669) digits to their ASCII equivalents. All other runes pass
// through unchanged. User-typed dates and numbers are normalized before any
// validation or parsing.
func NormalizeDigits(s string) string {
	var b strings.Builder
	changed := false
	for i, r := range s {
		switch {
		case r >= 0x06F0 && r <= 0x06F9:
			if !changed {
				b.Grow(len(s))
				b.WriteString(s[:i])
				changed = true
			}
			b.WriteRune('0' + (r - 0x06F0))
		case r >= 0x0660 && r <= 0x0669:
			if !changed {
				b.Grow(len(s))
				b.WriteString(s[:i])
				changed = true
			}
			b.WriteRune('0' + (r - 0x0660))
		default:
			if changed {
				b.WriteRune(r)
			}
		}
	}
	if !changed {
		return s
	}
	return b.String()
}
