package market

import (
	"fmt"

	"github.com/kxiao1/risk-system/internal/currency"
)

// SpotTable stores spot quotes as units of USD per one unit of foreign
// currency (CCYUSD). USD itself is seeded at 1.0 and is never missing.
type SpotTable struct {
	spots map[currency.Currency]float64
}

// NewSpotTable returns a table holding only the USD identity quote.
func NewSpotTable() *SpotTable {
	return &SpotTable{spots: map[currency.Currency]float64{currency.USD: 1.0}}
}

// SetSpot overwrites the quote for a currency.
func (t *SpotTable) SetSpot(ccy currency.Currency, rate float64) {
	t.spots[ccy] = rate
}

// HasQuote reports whether a quote is stored for the currency.
func (t *SpotTable) HasQuote(ccy currency.Currency) bool {
	_, ok := t.spots[ccy]
	return ok
}

// Cross returns the base/term cross rate, spot[base] / spot[term]. Both
// quotes are CCYUSD so no inversion is needed.
func (t *SpotTable) Cross(base, term currency.Currency) (float64, error) {
	baseSpot, ok := t.spots[base]
	if !ok {
		return 0, fmt.Errorf("cross %s/%s: %w: %s", base, term, ErrMissingQuote, base)
	}
	termSpot, ok := t.spots[term]
	if !ok {
		return 0, fmt.Errorf("cross %s/%s: %w: %s", base, term, ErrMissingQuote, term)
	}
	return baseSpot / termSpot, nil
}
