package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

var errNotFound = apperrors.NewNotFoundError("not found")

// Mocks

type MockServiceRepo struct {
	mock.Mock
}

func (m *MockServiceRepo) Create(ctx context.Context, service *entities.Service) error {
	return nil
}
func (m *MockServiceRepo) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}
func (m *MockServiceRepo) Update(ctx context.Context, service *entities.Service) error {
	return nil
}
func (m *MockServiceRepo) Delete(ctx context.Context, id string) error {
	return nil
}
func (m *MockServiceRepo) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.Service, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}
func (m *MockServiceRepo) Count(ctx context.Context, filter repositories.ServiceFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

type MockSearchRepo struct {
	mock.Mock
}

func (m *MockSearchRepo) Search(ctx context.Context, query string, filter repositories.ServiceFilter) ([]*entities.Service, error) {
	args := m.Called(ctx, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}
func (m *MockSearchRepo) Index(ctx context.Context, service *entities.Service) error {
	return nil
}
func (m *MockSearchRepo) Remove(ctx context.Context, id string) error {
	return nil
}

type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}
func (m *MockAppointmentRepo) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Appointment, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockUserRepo struct {
	mock.Mock
	users map[string]*entities.User
}

func newMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: make(map[string]*entities.User)}
}

func (m *MockUserRepo) Create(ctx context.Context, user *entities.User) error {
	m.users[user.ID] = user
	return nil
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errNotFound
}
func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, errNotFound
}
func (m *MockUserRepo) Update(ctx context.Context, user *entities.User) error {
	m.users[user.ID] = user
	return nil
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return errNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type MockSchedulingProvider struct {
	mock.Mock
}

func (m *MockSchedulingProvider) GetDateRange(ctx context.Context, schedulingID string, from, to time.Time) ([]entities.AppointmentDate, error) {
	args := m.Called(ctx, schedulingID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AppointmentDate), args.Error(1)
}
func (m *MockSchedulingProvider) GetTimeSlots(ctx context.Context, schedulingID string, day time.Time) ([]entities.TimeSlot, error) {
	args := m.Called(ctx, schedulingID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TimeSlot), args.Error(1)
}
func (m *MockSchedulingProvider) CreateReservation(ctx context.Context, appointment *entities.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}
func (m *MockSchedulingProvider) CancelReservation(ctx context.Context, externalID string, reason string) error {
	args := m.Called(ctx, externalID, reason)
	return args.Error(0)
}
