package handlers

import (
	"net/http"
	"strconv"

	"github.com/careseek/booking-backend/internal/api/middleware"
	"github.com/careseek/booking-backend/internal/application/services"
	"github.com/careseek/booking-backend/internal/booking"
	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/locale"
)

// BookingHandler handles booking screen HTTP requests
type BookingHandler struct {
	booking *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{booking: bookingService}
}

// screenResponse is the client's view of a screen: the full session plus the
// derived window and text direction, so the client renders without
// re-deriving them.
type screenResponse struct {
	*booking.Screen
	VisibleDates    []entities.AppointmentDate `json:"visible_dates"`
	Direction       locale.Direction           `json:"direction"`
	CanPageForward  bool                       `json:"can_page_forward"`
	CanPageBackward bool                       `json:"can_page_backward"`
}

func respondWithScreen(w http.ResponseWriter, status int, screen *booking.Screen) {
	respondWithJSON(w, status, screenResponse{
		Screen:          screen,
		VisibleDates:    screen.VisibleDates(),
		Direction:       screen.Direction(),
		CanPageForward:  screen.Navigator.CanPageForward(),
		CanPageBackward: screen.Navigator.CanPageBackward(),
	})
}

// CreateScreen handles POST /api/services/{id}/booking
func (h *BookingHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PathValue("id")
	if serviceID == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	q := r.URL.Query()
	screen, err := h.booking.CreateScreen(r.Context(), serviceID, q.Get("fromDate"), q.Get("toDate"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithScreen(w, http.StatusCreated, screen)
}

// GetScreen handles GET /api/booking/{screenID}
func (h *BookingHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	screen, err := h.booking.GetScreen(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// UpdateRange handles POST /api/booking/{screenID}/range
func (h *BookingHandler) UpdateRange(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FromDate string `json:"from_date"`
		ToDate   string `json:"to_date"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	screen, err := h.booking.UpdateRange(r.Context(), r.PathValue("screenID"), payload.FromDate, payload.ToDate)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// PageForward handles POST /api/booking/{screenID}/page-forward
func (h *BookingHandler) PageForward(w http.ResponseWriter, r *http.Request) {
	screen, err := h.booking.PageForward(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// PageBackward handles POST /api/booking/{screenID}/page-backward
func (h *BookingHandler) PageBackward(w http.ResponseWriter, r *http.Request) {
	screen, err := h.booking.PageBackward(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// SelectDate handles POST /api/booking/{screenID}/date
func (h *BookingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Index *int `json:"index"`
	}
	if !decodeJSON(w, r, &payload) || payload.Index == nil {
		if payload.Index == nil {
			respondWithError(w, http.StatusBadRequest, "index is required")
		}
		return
	}

	screen, err := h.booking.SelectDate(r.Context(), r.PathValue("screenID"), *payload.Index)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// NextAvailable handles POST /api/booking/{screenID}/next-available
func (h *BookingHandler) NextAvailable(w http.ResponseWriter, r *http.Request) {
	screen, err := h.booking.NextAvailable(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// SelectAddress handles POST /api/booking/{screenID}/address
func (h *BookingHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Index *int `json:"index"`
	}
	if !decodeJSON(w, r, &payload) || payload.Index == nil {
		if payload.Index == nil {
			respondWithError(w, http.StatusBadRequest, "index is required")
		}
		return
	}

	screen, err := h.booking.SelectAddress(r.Context(), r.PathValue("screenID"), *payload.Index)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// ConfirmAddress handles POST /api/booking/{screenID}/address/confirm
func (h *BookingHandler) ConfirmAddress(w http.ResponseWriter, r *http.Request) {
	screen, err := h.booking.ConfirmAddress(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// TimeSlots handles GET /api/booking/{screenID}/slots
func (h *BookingHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.booking.TimeSlots(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"slots": slots})
}

// SelectTime handles POST /api/booking/{screenID}/time
func (h *BookingHandler) SelectTime(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Time string `json:"time"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	screen, err := h.booking.SelectTime(r.Context(), r.PathValue("screenID"), payload.Time)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// Back handles POST /api/booking/{screenID}/back
func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	screen, err := h.booking.Back(r.Context(), r.PathValue("screenID"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithScreen(w, http.StatusOK, screen)
}

// Confirm handles POST /api/booking/{screenID}/confirm. Requires a session.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload services.ConfirmPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	appointment, err := h.booking.Confirm(r.Context(), r.PathValue("screenID"), session.User.ID, payload)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, appointment)
}

// ListAppointments handles GET /api/appointments. Requires a session.
func (h *BookingHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	appointments, err := h.booking.ListAppointments(r.Context(), session.User.ID, limit, offset)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CancelAppointment handles POST /api/appointments/{id}/cancel. Requires a
// session.
func (h *BookingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	if err := h.booking.CancelAppointment(r.Context(), r.PathValue("id"), session.User.ID, payload.Reason); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
