package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func serviceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "image", "category", "specialty",
		"doctor_sex", "area", "insurances", "price_usd", "addresses",
		"scheduling_id", "is_active", "created_at", "updated_at",
	})
}

func TestServiceAdapter_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully reads a service", func(t *testing.T) {
		// Arrange
		client, mock := setupMockDB(t)
		adapter := NewServiceAdapter(client)

		now := time.Now()
		mock.ExpectQuery(`SELECT .+ FROM "services" WHERE \("id" = 'svc-1'\)`).
			WillReturnRows(serviceRows().AddRow(
				"svc-1",
				[]byte(`{"en":"General checkup","fa":"معاینه عمومی"}`),
				[]byte(`{"en":"Routine visit"}`),
				"https://img.example/svc-1.png",
				"office",
				"spec1",
				"all",
				"north",
				pq.StringArray{"ins1", "ins2"},
				45.0,
				[]byte(`[{"title":{"en":"Downtown clinic"},"description":{"en":"2nd floor"}}]`),
				"sched-1",
				true,
				now,
				now,
			))

		// Act
		service, err := adapter.GetByID(ctx, "svc-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "svc-1", service.ID)
		assert.Equal(t, "General checkup", service.Name.In("en"))
		assert.Equal(t, entities.CategoryOffice, service.Category)
		assert.Equal(t, []string{"ins1", "ins2"}, service.Insurances)
		require.Len(t, service.Addresses, 1)
		assert.Equal(t, "Downtown clinic", service.Addresses[0].Title.In("en"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing service is a not-found error", func(t *testing.T) {
		// Arrange
		client, mock := setupMockDB(t)
		adapter := NewServiceAdapter(client)

		mock.ExpectQuery(`SELECT .+ FROM "services"`).WillReturnRows(serviceRows())

		// Act
		_, err := adapter.GetByID(ctx, "svc-missing")

		// Assert
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestServiceAdapter_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters are applied", func(t *testing.T) {
		// Arrange
		client, mock := setupMockDB(t)
		adapter := NewServiceAdapter(client)

		now := time.Now()
		mock.ExpectQuery(`SELECT .+ FROM "services" WHERE .+"category" = 'phone'.+ LIMIT 10`).
			WillReturnRows(serviceRows().AddRow(
				"svc-2", []byte(`{"en":"Phone consult"}`), []byte(`{}`), "",
				"phone", "spec1", "", "", pq.StringArray{}, 20.0,
				[]byte(`[{"title":{"en":"Main office"},"description":{}}]`),
				"", true, now, now,
			))

		// Act
		services, err := adapter.List(ctx, repositories.ServiceFilter{
			Category:   entities.CategoryPhone,
			Specialty:  "spec1",
			ActiveOnly: true,
			Limit:      10,
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, "svc-2", services[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestServiceAdapter_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully creates a service", func(t *testing.T) {
		// Arrange
		client, mock := setupMockDB(t)
		adapter := NewServiceAdapter(client)

		mock.ExpectExec(`INSERT INTO "services"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		service := &entities.Service{
			ID:       "svc-3",
			Name:     entities.LocalizedText{"en": "AI triage"},
			Category: entities.CategoryAI,
			Addresses: []entities.Address{
				{Title: entities.LocalizedText{"en": "Online"}},
			},
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		// Act
		err := adapter.Create(ctx, service)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestServiceAdapter_Count(t *testing.T) {
	ctx := context.Background()

	client, mock := setupMockDB(t)
	adapter := NewServiceAdapter(client)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := adapter.Count(ctx, repositories.ServiceFilter{Category: entities.CategoryOffice})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
