package handlers

import (
	"net/http"
	"time"

	"github.com/careseek/booking-backend/internal/api/middleware"
	"github.com/careseek/booking-backend/internal/application/services"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload services.RegisterPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	user, err := h.auth.Register(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	session, err := h.auth.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		clearSessionCookie(w)
		respondWithAppError(w, r, err)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)
	respondWithJSON(w, http.StatusOK, session)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	clearSessionCookie(w)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		clearSessionCookie(w)
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respondWithJSON(w, http.StatusOK, session.User)
}

// RequestPasswordReset handles POST /api/auth/password/reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var payload services.PasswordResetPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	token, err := h.auth.RequestPasswordReset(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	// The token would be delivered out of band; it is returned here only
	// when issued, since there is no mail transport.
	body := map[string]string{"status": "ok"}
	if token != "" {
		body["reset_token"] = token
	}
	respondWithJSON(w, http.StatusOK, body)
}

// ChangePassword handles POST /api/auth/password/change
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload services.ChangePasswordPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	if payload.ResetToken == "" {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			clearSessionCookie(w)
			respondWithError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		payload.UserID = session.User.ID
	}

	if err := h.auth.ChangePassword(r.Context(), payload); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
