package middleware

import (
	"net/http"

	"github.com/careseek/booking-backend/internal/locale"
)

// LocaleMiddleware resolves the request language from the lang query
// parameter or the Accept-Language header and attaches it to the context.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("lang")
		if raw == "" {
			raw = r.Header.Get("Accept-Language")
		}
		lang := locale.Parse(raw)

		ctx := locale.WithLanguage(r.Context(), lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
