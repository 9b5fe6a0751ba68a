package routes

import (
	"net/http"

	"github.com/careseek/booking-backend/internal/api/handlers"
	"github.com/careseek/booking-backend/internal/api/middleware"
	"github.com/careseek/booking-backend/internal/application/services"
	"github.com/careseek/booking-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	serviceHandler  *handlers.ServiceHandler
	filterHandler   *handlers.FilterHandler
	bookingHandler  *handlers.BookingHandler
	authHandler     *handlers.AuthHandler
	currencyHandler *handlers.CurrencyHandler
	localeHandler   *handlers.LocaleHandler

	authService *services.AuthService
	metrics     *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	serviceHandler *handlers.ServiceHandler,
	filterHandler *handlers.FilterHandler,
	bookingHandler *handlers.BookingHandler,
	authHandler *handlers.AuthHandler,
	currencyHandler *handlers.CurrencyHandler,
	localeHandler *handlers.LocaleHandler,
	authService *services.AuthService,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		serviceHandler:  serviceHandler,
		filterHandler:   filterHandler,
		bookingHandler:  bookingHandler,
		authHandler:     authHandler,
		currencyHandler: currencyHandler,
		localeHandler:   localeHandler,

		authService: authService,
		metrics:     metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	optionalAuth := middleware.AuthMiddleware(r.authService, false)
	requireAuth := middleware.AuthMiddleware(r.authService, true)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Catalog endpoints
	r.mux.HandleFunc("GET /api/services", r.serviceHandler.ListServices)
	r.mux.HandleFunc("GET /api/services/more", r.serviceHandler.LoadMore)
	r.mux.HandleFunc("GET /api/services/search", r.serviceHandler.SearchServices)
	r.mux.HandleFunc("GET /api/services/{id}", r.serviceHandler.GetService)

	// Filter state endpoints
	r.mux.HandleFunc("GET /api/filters", r.filterHandler.GetFilters)
	r.mux.HandleFunc("POST /api/filters", r.filterHandler.UpdateFilters)
	r.mux.HandleFunc("POST /api/filters/tab/{category}", r.filterHandler.SwitchTab)
	r.mux.HandleFunc("DELETE /api/filters/{key}", r.filterHandler.RemoveFilter)

	// Booking screen endpoints
	r.mux.HandleFunc("POST /api/services/{id}/booking", r.bookingHandler.CreateScreen)
	r.mux.HandleFunc("GET /api/booking/{screenID}", r.bookingHandler.GetScreen)
	r.mux.HandleFunc("POST /api/booking/{screenID}/range", r.bookingHandler.UpdateRange)
	r.mux.HandleFunc("POST /api/booking/{screenID}/page-forward", r.bookingHandler.PageForward)
	r.mux.HandleFunc("POST /api/booking/{screenID}/page-backward", r.bookingHandler.PageBackward)
	r.mux.HandleFunc("POST /api/booking/{screenID}/date", r.bookingHandler.SelectDate)
	r.mux.HandleFunc("POST /api/booking/{screenID}/next-available", r.bookingHandler.NextAvailable)
	r.mux.HandleFunc("POST /api/booking/{screenID}/address", r.bookingHandler.SelectAddress)
	r.mux.HandleFunc("POST /api/booking/{screenID}/address/confirm", r.bookingHandler.ConfirmAddress)
	r.mux.HandleFunc("GET /api/booking/{screenID}/slots", r.bookingHandler.TimeSlots)
	r.mux.HandleFunc("POST /api/booking/{screenID}/time", r.bookingHandler.SelectTime)
	r.mux.HandleFunc("POST /api/booking/{screenID}/back", r.bookingHandler.Back)
	r.mux.Handle("POST /api/booking/{screenID}/confirm", requireAuth(http.HandlerFunc(r.bookingHandler.Confirm)))

	// Appointment endpoints
	r.mux.Handle("GET /api/appointments", requireAuth(http.HandlerFunc(r.bookingHandler.ListAppointments)))
	r.mux.Handle("POST /api/appointments/{id}/cancel", requireAuth(http.HandlerFunc(r.bookingHandler.CancelAppointment)))

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(r.authHandler.Me)))
	r.mux.HandleFunc("POST /api/auth/password/reset", r.authHandler.RequestPasswordReset)
	r.mux.Handle("POST /api/auth/password/change", optionalAuth(http.HandlerFunc(r.authHandler.ChangePassword)))

	// Currency endpoints
	r.mux.HandleFunc("GET /api/currency", r.currencyHandler.GetCurrency)
	r.mux.HandleFunc("PUT /api/currency", r.currencyHandler.SelectCurrency)
	r.mux.HandleFunc("GET /api/currency/convert", r.currencyHandler.ConvertPrice)

	// Locale endpoint
	r.mux.HandleFunc("GET /api/locale", r.localeHandler.GetLocale)

	// Apply middleware stack
	var handler http.Handler = r.mux
	handler = middleware.LocaleMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
