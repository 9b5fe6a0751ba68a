package handlers

import (
	"net/http"
	"strconv"

	"github.com/careseek/booking-backend/internal/application/services"
	"github.com/careseek/booking-backend/internal/filters"
)

// ServiceHandler handles catalog HTTP requests
type ServiceHandler struct {
	catalog *services.CatalogService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalog *services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// ListServices handles GET /api/services. The filter state is decoded from
// the query string; the response echoes the state and its canonical query so
// the client can mirror it into the URL.
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := filters.ParseTab(q, filters.DefaultCategory)
	state := filters.Decode(q, tab)

	page, err := h.catalog.Feed(r.Context(), state)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"feed":    page,
		"filters": state,
		"query":   state.Encode().Encode(),
	})
}

// LoadMore handles GET /api/services/more. The feed parameter identifies the
// client's feed instance so bursts of scroll events collapse into one load.
func (h *ServiceHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	feedID := q.Get("feed")
	if feedID == "" {
		respondWithError(w, http.StatusBadRequest, "feed parameter is required")
		return
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "page parameter must be a number")
		return
	}

	tab := filters.ParseTab(q, filters.DefaultCategory)
	state := filters.Decode(q, tab)

	result, err := h.catalog.LoadMore(r.Context(), feedID, state, page)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SearchServices handles GET /api/services/search
func (h *ServiceHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := filters.ParseTab(q, filters.DefaultCategory)
	state := filters.Decode(q, tab)

	results, err := h.catalog.Search(r.Context(), q.Get("q"), state)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": results,
		"count":    len(results),
	})
}

// GetService handles GET /api/services/{id}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PathValue("id")
	if serviceID == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	service, err := h.catalog.GetService(r.Context(), serviceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, service)
}
