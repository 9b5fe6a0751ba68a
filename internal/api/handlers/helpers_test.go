package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

func decodeBody(rec *httptest.ResponseRecorder, dst interface{}) error {
	return json.NewDecoder(rec.Body).Decode(dst)
}

// stubServiceRepo serves a fixed set of services.
type stubServiceRepo struct {
	services map[string]*entities.Service
}

func newStubServiceRepo(services ...*entities.Service) *stubServiceRepo {
	r := &stubServiceRepo{services: make(map[string]*entities.Service)}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *stubServiceRepo) Create(ctx context.Context, service *entities.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *stubServiceRepo) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, apperrors.NewNotFoundError("service not found")
}

func (r *stubServiceRepo) Update(ctx context.Context, service *entities.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *stubServiceRepo) Delete(ctx context.Context, id string) error {
	delete(r.services, id)
	return nil
}

func (r *stubServiceRepo) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.Service, error) {
	var out []*entities.Service
	for _, s := range r.services {
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *stubServiceRepo) Count(ctx context.Context, filter repositories.ServiceFilter) (int, error) {
	list, _ := r.List(ctx, filter)
	return len(list), nil
}

// stubSchedulingProvider answers with fixed availability: every day has two
// appointments and a single morning slot.
type stubSchedulingProvider struct{}

func (stubSchedulingProvider) GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	var out []entities.AppointmentDate
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, entities.AppointmentDate{Date: d, AvailableAppointments: 2})
	}
	return out, nil
}

func (stubSchedulingProvider) GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	return []entities.TimeSlot{{Time: "09:00", IsAvailable: true}}, nil
}

func (stubSchedulingProvider) CreateReservation(ctx context.Context, appointment *entities.Appointment) (string, error) {
	return "ext-1", nil
}

func (stubSchedulingProvider) CancelReservation(ctx context.Context, externalID string, reason string) error {
	return nil
}

// stubAppointmentRepo records created appointments in memory.
type stubAppointmentRepo struct {
	appointments map[string]*entities.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[string]*entities.Appointment)}
}

func (r *stubAppointmentRepo) Create(ctx context.Context, appointment *entities.Appointment) error {
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	if a, ok := r.appointments[id]; ok {
		return a, nil
	}
	return nil, apperrors.NewNotFoundError("appointment not found")
}

func (r *stubAppointmentRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Appointment, error) {
	var out []*entities.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	a, ok := r.appointments[id]
	if !ok {
		return apperrors.NewNotFoundError("appointment not found")
	}
	a.Status = status
	return nil
}

// stubUserRepo keeps registered users in memory.
type stubUserRepo struct {
	users map[string]*entities.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entities.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *stubUserRepo) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *stubUserRepo) Update(ctx context.Context, user *entities.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}
