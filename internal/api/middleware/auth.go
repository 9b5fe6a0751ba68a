package middleware

import (
	"context"
	"net/http"

	"github.com/careseek/booking-backend/internal/application/services"
	"github.com/careseek/booking-backend/internal/domain/entities"
)

type sessionContextKey struct{}

// SessionCookieName mirrors the cookie the auth handler sets.
const SessionCookieName = "jwt"

// SessionFromContext returns the verified session attached by AuthMiddleware.
func SessionFromContext(ctx context.Context) (*entities.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*entities.Session)
	return session, ok
}

// AuthMiddleware verifies the session cookie and attaches the session to the
// request context. Optional auth passes the request through without a
// session; required auth answers 401 and expires the cookie, forcing the
// client back to a logged-out state.
func AuthMiddleware(auth *services.AuthService, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				if required {
					forceLogout(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			session, err := auth.Verify(r.Context(), cookie.Value)
			if err != nil {
				if required {
					forceLogout(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func forceLogout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"authentication required"}`))
}
