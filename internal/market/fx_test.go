package market

import (
	"errors"
	"testing"

	"github.com/kxiao1/risk-system/internal/currency"
)

func TestCross(t *testing.T) {
	table := NewSpotTable()
	table.SetSpot("EUR", 1.10)
	table.SetSpot("JPY", 150.0)

	tests := []struct {
		name       string
		base, term currency.Currency
		want       float64
	}{
		{"foreign cross", "EUR", "JPY", 1.10 / 150.0},
		{"usd identity", "USD", "USD", 1.0},
		{"against usd", "EUR", "USD", 1.10},
		{"usd base", "USD", "JPY", 1.0 / 150.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Cross(tt.base, tt.term)
			if err != nil {
				t.Fatalf("Cross(%s, %s): %v", tt.base, tt.term, err)
			}
			if got != tt.want {
				t.Errorf("Cross(%s, %s) = %v, want %v", tt.base, tt.term, got, tt.want)
			}
		})
	}
}

func TestCrossMissingQuote(t *testing.T) {
	table := NewSpotTable()
	table.SetSpot("EUR", 1.10)

	if _, err := table.Cross("EUR", "CAD"); !errors.Is(err, ErrMissingQuote) {
		t.Errorf("Cross(EUR, CAD) error = %v, want ErrMissingQuote", err)
	}
	if _, err := table.Cross("CAD", "EUR"); !errors.Is(err, ErrMissingQuote) {
		t.Errorf("Cross(CAD, EUR) error = %v, want ErrMissingQuote", err)
	}

	// Overwriting fills the gap.
	table.SetSpot("CAD", 0.75)
	if got, err := table.Cross("CAD", "USD"); err != nil || got != 0.75 {
		t.Errorf("Cross(CAD, USD) = %v, %v, want 0.75, nil", got, err)
	}
}
