package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careseek/booking-backend/internal/adapters/cache"
	"github.com/careseek/booking-backend/internal/domain/entities"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		target entities.CurrencyCode
		want   float64
	}{
		{"usd is identity", 49.99, entities.CurrencyUSD, 49.99},
		{"irr at fixed rate", 10, entities.CurrencyIRR, 420000},
		{"gold at fixed rate", 100, entities.CurrencyGold, 0.05},
		{"gold rounds to two decimals", 49, entities.CurrencyGold, 0.02},
		{"zero amount", 0, entities.CurrencyIRR, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.amount, tt.target)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("unknown currency is a validation error", func(t *testing.T) {
		_, err := Convert(10, entities.CurrencyCode("eur"))

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})
}

func TestRates(t *testing.T) {
	rates := Rates()

	assert.Equal(t, float64(1), rates[entities.CurrencyUSD])
	assert.Equal(t, float64(42000), rates[entities.CurrencyIRR])
	assert.Equal(t, 0.0005, rates[entities.CurrencyGold])

	// Returned table is a copy.
	rates[entities.CurrencyUSD] = 99
	assert.Equal(t, float64(1), Rates()[entities.CurrencyUSD])
}

func TestCurrencyService_Selection(t *testing.T) {
	svc := NewCurrencyService(cache.NewMemoryAdapter())
	ctx := context.Background()

	t.Run("defaults to usd", func(t *testing.T) {
		assert.Equal(t, entities.CurrencyUSD, svc.Selected(ctx, "visitor-1"))
	})

	t.Run("select persists per visitor", func(t *testing.T) {
		require.NoError(t, svc.Select(ctx, "visitor-1", entities.CurrencyIRR))

		assert.Equal(t, entities.CurrencyIRR, svc.Selected(ctx, "visitor-1"))
		assert.Equal(t, entities.CurrencyUSD, svc.Selected(ctx, "visitor-2"))
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		err := svc.Select(ctx, "visitor-1", entities.CurrencyCode("btc"))

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.Equal(t, entities.CurrencyIRR, svc.Selected(ctx, "visitor-1"))
	})
}
