package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careseek/booking-backend/internal/filters"
)

func newFilterRouter() *http.ServeMux {
	h := NewFilterHandler()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/filters", h.GetFilters)
	mux.HandleFunc("POST /api/filters", h.UpdateFilters)
	mux.HandleFunc("POST /api/filters/tab/{category}", h.SwitchTab)
	mux.HandleFunc("DELETE /api/filters/{key}", h.RemoveFilter)
	return mux
}

func doFilterRequest(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, filterResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	newFilterRouter().ServeHTTP(rec, req)

	var resp filterResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, decodeBody(rec, &resp))
	}
	return rec, resp
}

func TestFilterHandler_GetFilters(t *testing.T) {
	t.Run("decodes office tab state", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodGet,
			"/api/filters?category=office&specialty=cardiology&doctorSex=female&withAvailableAppointment=1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cardiology", resp.Filters.Specialty)
		assert.Equal(t, filters.DoctorSexFemale, resp.Filters.DoctorSex)
		assert.True(t, resp.Filters.WithAvailableAppointment)
	})

	t.Run("unknown category falls back to office", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodGet, "/api/filters?category=video", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, filters.DefaultCategory, resp.Filters.Category)
	})

	t.Run("out-of-schema keys are dropped on the phone tab", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodGet,
			"/api/filters?category=phone&specialty=cardiology&area=downtown&insurance=acme", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cardiology", resp.Filters.Specialty)
		assert.Empty(t, resp.Filters.Area)
		assert.Empty(t, resp.Filters.Insurance)

		q, err := url.ParseQuery(resp.Query)
		require.NoError(t, err)
		assert.Empty(t, q.Get("area"))
	})
}

func TestFilterHandler_UpdateFilters(t *testing.T) {
	t.Run("writing fromDate clears toDate", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodPost,
			"/api/filters?category=office&fromDate=2026-02-01&toDate=2026-02-20",
			`{"from_date":"2026-03-01"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2026-03-01", resp.Filters.FromDate)
		assert.Empty(t, resp.Filters.ToDate)
	})

	t.Run("explicit pair survives", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodPost, "/api/filters?category=office",
			`{"from_date":"2026-03-01","to_date":"2026-03-10"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2026-03-01", resp.Filters.FromDate)
		assert.Equal(t, "2026-03-10", resp.Filters.ToDate)
	})

	t.Run("malformed payload date is rejected", func(t *testing.T) {
		rec, _ := doFilterRequest(t, http.MethodPost, "/api/filters?category=office",
			`{"from_date":"03/01/2026"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotContains(t, rec.Body.String(), "03/01/2026")
	})

	t.Run("payload dates accept localized digits", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodPost, "/api/filters?category=office",
			`{"from_date":"۲۰۲۶-۰۳-۰۱"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2026-03-01", resp.Filters.FromDate)
	})
}

func TestFilterHandler_SwitchTab(t *testing.T) {
	t.Run("query reduces to the category alone", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodPost, "/api/filters/tab/phone", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "category=phone", resp.Query)
		assert.Empty(t, resp.Chips)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		rec, _ := doFilterRequest(t, http.MethodPost, "/api/filters/tab/video", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFilterHandler_RemoveFilter(t *testing.T) {
	t.Run("removing fromDate clears the pair", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodDelete,
			"/api/filters/fromDate?category=office&fromDate=2026-02-01&toDate=2026-02-20&specialty=cardiology", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, resp.Filters.FromDate)
		assert.Empty(t, resp.Filters.ToDate)
		assert.Equal(t, "cardiology", resp.Filters.Specialty)
	})

	t.Run("chips reflect the remaining state", func(t *testing.T) {
		rec, resp := doFilterRequest(t, http.MethodDelete,
			"/api/filters/specialty?category=office&specialty=cardiology&doctorSex=male", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, resp.Chips, 1)
		assert.Equal(t, "doctorSex", resp.Chips[0].Key)
	})
}
