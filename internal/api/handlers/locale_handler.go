package handlers

import (
	"net/http"
	"time"

	"github.com/careseek/booking-backend/internal/locale"
)

// LocaleHandler reports the resolved request locale.
type LocaleHandler struct{}

// NewLocaleHandler creates a new locale handler
func NewLocaleHandler() *LocaleHandler {
	return &LocaleHandler{}
}

// GetLocale handles GET /api/locale: the resolved language, its text
// direction, and today rendered in the locale's calendar.
func (h *LocaleHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	lang := locale.FromContext(r.Context())
	today := time.Now().UTC()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"language":  lang,
		"direction": locale.DirectionOf(lang),
		"today":     locale.FormatDate(today, lang),
	})
}
