package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careseek/booking-backend/internal/domain/entities"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "service_id", "address_index", "date", "time",
		"status", "external_id", "patient_name", "patient_phone", "notes",
		"created_at", "updated_at",
	})
}

func TestAppointmentAdapter_Create(t *testing.T) {
	ctx := context.Background()

	client, mock := setupMockDB(t)
	adapter := NewAppointmentAdapter(client)

	mock.ExpectExec(`INSERT INTO "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	appointment := &entities.Appointment{
		ID:           "apt-1",
		UserID:       "user-1",
		ServiceID:    "svc-1",
		AddressIndex: 0,
		Date:         time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC),
		Time:         "09:00",
		Status:       entities.AppointmentStatusPending,
		PatientName:  "Jane Doe",
		PatientPhone: "+989121234567",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	require.NoError(t, adapter.Create(ctx, appointment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentAdapter_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully reads an appointment", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewAppointmentAdapter(client)

		now := time.Now()
		mock.ExpectQuery(`SELECT .+ FROM "appointments" WHERE \("id" = 'apt-1'\)`).
			WillReturnRows(appointmentRows().AddRow(
				"apt-1", "user-1", "svc-1", 1,
				time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC),
				"09:00", "confirmed", "ext-9", "Jane Doe", "+989121234567", nil,
				now, now,
			))

		appointment, err := adapter.GetByID(ctx, "apt-1")
		require.NoError(t, err)

		assert.Equal(t, "apt-1", appointment.ID)
		assert.Equal(t, 1, appointment.AddressIndex)
		assert.Equal(t, entities.AppointmentStatusConfirmed, appointment.Status)
		assert.Equal(t, "ext-9", appointment.ExternalID)
		assert.Empty(t, appointment.Notes)
	})

	t.Run("missing appointment is a not-found error", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewAppointmentAdapter(client)

		mock.ExpectQuery(`SELECT .+ FROM "appointments"`).WillReturnRows(appointmentRows())

		_, err := adapter.GetByID(ctx, "apt-missing")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestAppointmentAdapter_ListByUser(t *testing.T) {
	ctx := context.Background()

	client, mock := setupMockDB(t)
	adapter := NewAppointmentAdapter(client)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM "appointments" WHERE \("user_id" = 'user-1'\) ORDER BY "created_at" DESC`).
		WillReturnRows(appointmentRows().
			AddRow("apt-2", "user-1", "svc-1", 0, now, "10:00", "pending", nil, "Jane", "+15551234567", nil, now, now).
			AddRow("apt-1", "user-1", "svc-2", 0, now, "11:00", "cancelled", nil, "Jane", "+15551234567", nil, now, now))

	appointments, err := adapter.ListByUser(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "apt-2", appointments[0].ID)
}

func TestAppointmentAdapter_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions status", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewAppointmentAdapter(client)

		mock.ExpectExec(`UPDATE "appointments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := adapter.UpdateStatus(ctx, "apt-1", entities.AppointmentStatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("zero rows is a not-found error", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewAppointmentAdapter(client)

		mock.ExpectExec(`UPDATE "appointments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := adapter.UpdateStatus(ctx, "apt-missing", entities.AppointmentStatusCancelled)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}
