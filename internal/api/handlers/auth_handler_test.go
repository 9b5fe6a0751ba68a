package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careseek/booking-backend/internal/adapters/cache"
	"github.com/careseek/booking-backend/internal/api/middleware"
	"github.com/careseek/booking-backend/internal/application/services"
)

func newAuthRouter() (http.Handler, *services.AuthService) {
	auth := services.NewAuthService(newStubUserRepo(), cache.NewMemoryAdapter(), "test-secret", time.Hour, 2*time.Hour)
	h := NewAuthHandler(auth)
	requireAuth := middleware.AuthMiddleware(auth, true)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(h.Me)))
	return mux, auth
}

func registerBody() string {
	return `{
		"first_name": "Sara",
		"last_name": "Ahmadi",
		"email": "sara@example.com",
		"phone": "+989121234567",
		"password": "Str0ng!pass",
		"repeat_password": "Str0ng!pass"
	}`
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates the account", func(t *testing.T) {
		router, _ := newAuthRouter()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(registerBody()))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var user map[string]interface{}
		require.NoError(t, decodeBody(rec, &user))
		assert.Equal(t, "sara@example.com", user["email"])
		assert.NotContains(t, rec.Body.String(), "Str0ng!pass")
	})

	t.Run("field errors are returned inline", func(t *testing.T) {
		router, _ := newAuthRouter()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"email":"bad","password":"short","repeat_password":"short"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, decodeBody(rec, &body))
		assert.Contains(t, body.Fields, "email")
		assert.Equal(t, "Password must be at least 8 characters.", body.Fields["password"])
	})
}

func TestAuthHandler_LoginFlow(t *testing.T) {
	router, _ := newAuthRouter()

	register := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(registerBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, register)
	require.Equal(t, http.StatusCreated, rec.Code)

	login := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"identifier":"sara@example.com","password":"Str0ng!pass"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, login)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "jwt", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	t.Run("me returns the session user", func(t *testing.T) {
		me := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		me.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, me)

		require.Equal(t, http.StatusOK, rec.Code)
		var user map[string]interface{}
		require.NoError(t, decodeBody(rec, &user))
		assert.Equal(t, "sara@example.com", user["email"])
	})

	t.Run("me without a session forces logout", func(t *testing.T) {
		me := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, me)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		expired := sessionCookie(rec)
		require.NotNil(t, expired)
		assert.Empty(t, expired.Value)
		assert.Negative(t, expired.MaxAge)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		logout := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader("{}"))
		logout.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, logout)
		require.Equal(t, http.StatusOK, rec.Code)

		me := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		me.AddCookie(cookie)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, me)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad credentials clear any session cookie", func(t *testing.T) {
		badLogin := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"identifier":"sara@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, badLogin)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		cleared := sessionCookie(rec)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})
}
