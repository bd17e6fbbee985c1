package risk

import (
	"math"
	"strings"
	"testing"
)

func TestClientEndToEnd(t *testing.T) {
	client, err := NewClient(WithEpochOffset(42940))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer client.Stop()

	rates := `# rates
IR.20D.EUR 0.010
IR.1M.EUR 0.015
IR.45D.EUR 0.018
FX.SPOT.EUR 1.10
FX.SPOT.JPY 150.0
`
	portfolio := `# portfolio
1;000f4240;EUR;42970;
`
	if err := client.LoadRecords(strings.NewReader(rates), strings.NewReader(portfolio)); err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	df, err := client.DiscountFactor("EUR", 30)
	if err != nil {
		t.Fatalf("DiscountFactor: %v", err)
	}
	if want := math.Exp(-0.015 * 30 / 360); math.Abs(df-want) > 1e-12 {
		t.Errorf("DiscountFactor(EUR, 30) = %v, want %v", df, want)
	}

	cross, err := client.Spot("EUR", "JPY")
	if err != nil {
		t.Fatalf("Spot: %v", err)
	}
	if want := 1.10 / 150.0; cross != want {
		t.Errorf("Spot(EUR, JPY) = %v, want %v", cross, want)
	}

	if got := client.Maturities("EUR"); len(got) != 1 || got[0] != 42970 {
		t.Errorf("Maturities(EUR) = %v, want [42970]", got)
	}

	if _, err := client.DV01Curve("EUR"); err != nil {
		t.Errorf("DV01Curve(EUR): %v", err)
	}

	if _, err := client.DiscountFactor("CAD", 30); err == nil {
		t.Error("expected explicit error for currency with no curve")
	}
}
