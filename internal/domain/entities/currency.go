package entities

// CurrencyCode identifies a display currency for catalog prices. Prices are
// stored in USD and converted for display only.
type CurrencyCode string

const (
	CurrencyUSD  CurrencyCode = "usd"
	CurrencyIRR  CurrencyCode = "irr"
	CurrencyGold CurrencyCode = "gold"
)

// IsValidCurrency reports whether c names a supported display currency.
func IsValidCurrency(c CurrencyCode) bool {
	switch c {
	case CurrencyUSD, CurrencyIRR, CurrencyGold:
		return true
	}
	return false
}
