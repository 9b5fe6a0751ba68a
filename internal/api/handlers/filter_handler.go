package handlers

import (
	"net/http"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/filters"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

// FilterHandler resolves filter state against the canonical query string.
// Every response carries both the decoded state and its re-encoded query so
// the client URL and the filter record never drift apart.
type FilterHandler struct{}

// NewFilterHandler creates a new filter handler
func NewFilterHandler() *FilterHandler {
	return &FilterHandler{}
}

type filterResponse struct {
	Filters filters.State  `json:"filters"`
	Chips   []filters.Chip `json:"chips"`
	Query   string         `json:"query"`
}

func respondWithFilters(w http.ResponseWriter, state filters.State) {
	respondWithJSON(w, http.StatusOK, filterResponse{
		Filters: state,
		Chips:   state.ActiveChips(),
		Query:   state.Encode().Encode(),
	})
}

// GetFilters handles GET /api/filters: it decodes the query string into the
// active tab's filter record. Unknown values and out-of-schema keys are
// dropped silently.
func (h *FilterHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := filters.ParseTab(q, filters.DefaultCategory)
	respondWithFilters(w, filters.Decode(q, tab))
}

// UpdateFilters handles POST /api/filters: it applies a partial update to
// the state decoded from the query string.
func (h *FilterHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Specialty                *string            `json:"specialty"`
		Service                  *string            `json:"service"`
		Area                     *string            `json:"area"`
		Insurance                *string            `json:"insurance"`
		DoctorSex                *filters.DoctorSex `json:"doctor_sex"`
		NearestToLocation        *bool              `json:"nearest_to_location"`
		WithAvailableAppointment *bool              `json:"with_available_appointment"`
		FromDate                 *string            `json:"from_date"`
		ToDate                   *string            `json:"to_date"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	if !normalizeDayField(w, r, payload.FromDate, "from_date") ||
		!normalizeDayField(w, r, payload.ToDate, "to_date") {
		return
	}

	q := r.URL.Query()
	tab := filters.ParseTab(q, filters.DefaultCategory)
	state := filters.Decode(q, tab)

	state.Merge(filters.Update{
		Specialty:                payload.Specialty,
		Service:                  payload.Service,
		Area:                     payload.Area,
		Insurance:                payload.Insurance,
		DoctorSex:                payload.DoctorSex,
		NearestToLocation:        payload.NearestToLocation,
		WithAvailableAppointment: payload.WithAvailableAppointment,
		FromDate:                 payload.FromDate,
		ToDate:                   payload.ToDate,
	})

	respondWithFilters(w, state)
}

// normalizeDayField validates a date field from the update payload in place.
// An empty value passes: it is the clear operation.
func normalizeDayField(w http.ResponseWriter, r *http.Request, value *string, field string) bool {
	if value == nil || *value == "" {
		return true
	}
	day, ok := filters.NormalizeDay(*value)
	if !ok {
		respondWithAppError(w, r, apperrors.NewFieldValidationError(
			"invalid date", map[string]string{field: "date must be YYYY-MM-DD"}))
		return false
	}
	*value = day
	return true
}

// SwitchTab handles POST /api/filters/tab/{category}: the new tab starts
// from its defaults and the query is reduced to the category alone, so no
// filter leaks across tabs.
func (h *FilterHandler) SwitchTab(w http.ResponseWriter, r *http.Request) {
	tab := entities.ServiceCategory(r.PathValue("category"))
	if !entities.IsValidCategory(tab) {
		respondWithError(w, http.StatusBadRequest, "unknown category")
		return
	}

	state, _ := filters.SwitchTab(tab)
	respondWithFilters(w, state)
}

// RemoveFilter handles DELETE /api/filters/{key}: it resets one field to its
// default, the operation behind dismissing a filter chip.
func (h *FilterHandler) RemoveFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := filters.ParseTab(q, filters.DefaultCategory)
	state := filters.Decode(q, tab)

	state.RemoveFilter(r.PathValue("key"))
	respondWithFilters(w, state)
}
