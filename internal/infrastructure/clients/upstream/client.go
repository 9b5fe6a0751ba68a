// Package upstream is the HTTP client for the scheduling marketplace API.
// Every request carries the active language and a configured user agent, and
// a bearer token when a token source is wired, unless the caller overrides
// the authorization header per call.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/locale"
)

// TokenSource supplies the bearer token for outgoing requests. A nil source
// sends unauthenticated requests.
type TokenSource func(ctx context.Context) (string, error)

// APIError is a non-2xx upstream response: the HTTP status plus whatever the
// JSON error body carried.
type APIError struct {
	StatusCode int               `json:"status_code"`
	Code       string            `json:"code,omitempty"`
	Message    string            `json:"message,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client talks to the upstream scheduling API.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	tokenSource TokenSource
}

// Option configures the client at construction.
type Option func(*Client)

// WithTokenSource wires a bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokenSource = ts }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an upstream client against the given base URL.
func NewClient(baseURL, userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// callOption adjusts a single request.
type callOption func(*http.Request)

// WithAuthorization overrides the authorization header for one call,
// suppressing the token source. An empty value sends no authorization at all.
func WithAuthorization(header string) callOption {
	return func(r *http.Request) {
		r.Header.Del("Authorization")
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		r.Header.Set(authOverrideMarker, "1")
	}
}

// authOverrideMarker is an internal header used to record that a call option
// took over authorization; it is stripped before sending.
const authOverrideMarker = "X-Internal-Auth-Override"

// GetDateRange fetches per-day availability for a scheduling resource over
// an inclusive date range.
func (c *Client) GetDateRange(ctx context.Context, lang locale.Language, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	endpoint := fmt.Sprintf("%s/scheduling/%s/dates?from=%s&to=%s",
		c.baseURL, url.PathEscape(schedulingID),
		entities.FormatDay(from), entities.FormatDay(to))

	var response struct {
		Data []entities.AppointmentDate `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, lang, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetTimeSlots fetches the bookable times on one day.
func (c *Client) GetTimeSlots(ctx context.Context, lang locale.Language, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	endpoint := fmt.Sprintf("%s/scheduling/%s/slots?date=%s",
		c.baseURL, url.PathEscape(schedulingID), entities.FormatDay(day))

	var response struct {
		Data []entities.TimeSlot `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, lang, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

type reservationRequest struct {
	SchedulingID string `json:"scheduling_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	AddressIndex int    `json:"address_index"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Notes        string `json:"notes,omitempty"`
}

// CreateReservation commits a reservation upstream and returns the upstream
// reservation identifier.
func (c *Client) CreateReservation(ctx context.Context, lang locale.Language, schedulingID string, appointment *entities.Appointment) (string, error) {
	endpoint := fmt.Sprintf("%s/scheduling/reservations", c.baseURL)
	req := reservationRequest{
		SchedulingID: schedulingID,
		Date:         entities.FormatDay(appointment.Date),
		Time:         appointment.Time,
		AddressIndex: appointment.AddressIndex,
		PatientName:  appointment.PatientName,
		PatientPhone: appointment.PatientPhone,
		Notes:        appointment.Notes,
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, lang, req, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

// CancelReservation cancels an upstream reservation.
func (c *Client) CancelReservation(ctx context.Context, lang locale.Language, externalID string, reason string) error {
	endpoint := fmt.Sprintf("%s/scheduling/reservations/%s?reason=%s",
		c.baseURL, url.PathEscape(externalID), url.QueryEscape(reason))
	return c.doJSON(ctx, http.MethodDelete, endpoint, lang, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, lang locale.Language, body, out interface{}, opts ...callOption) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept-Language", string(lang))
	httpReq.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for _, opt := range opts {
		opt(httpReq)
	}
	if httpReq.Header.Get(authOverrideMarker) == "" {
		if c.tokenSource != nil {
			token, err := c.tokenSource(ctx)
			if err != nil {
				return err
			}
			if token != "" {
				httpReq.Header.Set("Authorization", "Bearer "+token)
			}
		}
	}
	httpReq.Header.Del(authOverrideMarker)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, apiErr)
			apiErr.StatusCode = resp.StatusCode
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}
