package services

import (
	"context"
	"fmt"
	"math"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

// conversionRates maps display currencies to their fixed per-USD rate.
// Rates are intentionally static: pricing is stored in USD and display
// conversion is cosmetic.
var conversionRates = map[entities.CurrencyCode]float64{
	entities.CurrencyUSD:  1,
	entities.CurrencyIRR:  42000,
	entities.CurrencyGold: 0.0005,
}

// currencyKeyPrefix namespaces persisted currency preferences in the store.
const currencyKeyPrefix = "currency:"

// CurrencyService converts catalog prices for display and remembers each
// visitor's selected currency.
type CurrencyService struct {
	store providers.StoreProvider
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(store providers.StoreProvider) *CurrencyService {
	return &CurrencyService{store: store}
}

// Convert converts a USD amount into the target currency, rounded to 2
// decimal places.
func Convert(amountUSD float64, target entities.CurrencyCode) (float64, error) {
	rate, ok := conversionRates[target]
	if !ok {
		return 0, apperrors.NewValidationError(fmt.Sprintf("unsupported currency: %s", target))
	}
	return math.Round(amountUSD*rate*100) / 100, nil
}

// Rates returns the fixed conversion table.
func Rates() map[entities.CurrencyCode]float64 {
	out := make(map[entities.CurrencyCode]float64, len(conversionRates))
	for code, rate := range conversionRates {
		out[code] = rate
	}
	return out
}

// Selected returns the visitor's persisted currency, defaulting to USD.
func (s *CurrencyService) Selected(ctx context.Context, visitorID string) entities.CurrencyCode {
	raw, err := s.store.Get(ctx, currencyKeyPrefix+visitorID)
	if err != nil {
		return entities.CurrencyUSD
	}
	code := entities.CurrencyCode(raw)
	if !entities.IsValidCurrency(code) {
		return entities.CurrencyUSD
	}
	return code
}

// Select persists the visitor's currency choice.
func (s *CurrencyService) Select(ctx context.Context, visitorID string, code entities.CurrencyCode) error {
	if !entities.IsValidCurrency(code) {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported currency: %s", code))
	}
	return s.store.Set(ctx, currencyKeyPrefix+visitorID, []byte(code), 0)
}
