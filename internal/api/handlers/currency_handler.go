package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/careseek/booking-backend/internal/application/services"
	"github.com/careseek/booking-backend/internal/domain/entities"
)

// VisitorCookieName identifies an anonymous visitor so preferences like the
// display currency survive across requests without an account.
const VisitorCookieName = "hub-module-currency"

// CurrencyHandler handles display-currency HTTP requests
type CurrencyHandler struct {
	currency *services.CurrencyService
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currency *services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currency: currency}
}

// GetCurrency handles GET /api/currency: the visitor's selected currency and
// the fixed conversion table.
func (h *CurrencyHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	visitorID := h.visitorID(w, r)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"selected": h.currency.Selected(r.Context(), visitorID),
		"rates":    services.Rates(),
	})
}

// SelectCurrency handles PUT /api/currency
func (h *CurrencyHandler) SelectCurrency(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Currency entities.CurrencyCode `json:"currency"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	visitorID := h.visitorID(w, r)
	if err := h.currency.Select(r.Context(), visitorID, payload.Currency); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"selected": payload.Currency,
	})
}

// ConvertPrice handles GET /api/currency/convert?amount=..&to=..
func (h *CurrencyHandler) ConvertPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	target := entities.CurrencyCode(q.Get("to"))
	converted, err := services.Convert(amount, target)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"amount":   converted,
		"currency": target,
	})
}

// visitorID reads the visitor cookie, issuing one on first contact.
func (h *CurrencyHandler) visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	return id
}
