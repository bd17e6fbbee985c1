package currency

import "testing"

func TestResolve(t *testing.T) {
	set := G5()

	tests := []struct {
		in   string
		want Currency
		ok   bool
	}{
		{"EUR", "EUR", true},
		{"usd", "USD", true},
		{" JPY ", "JPY", true},
		{"CHF", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := set.Resolve(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCustomSet(t *testing.T) {
	set := NewSet("USD", "BRL", "brl", "MXN", "")

	codes := set.Codes()
	want := []string{"BRL", "MXN", "USD"}
	if len(codes) != len(want) {
		t.Fatalf("Codes() = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("Codes() = %v, want %v", codes, want)
		}
	}

	if !set.Contains("BRL") {
		t.Error("expected set to contain BRL")
	}
	if set.Contains("EUR") {
		t.Error("did not expect set to contain EUR")
	}
	if set.Name("MXN") != "MXN" {
		t.Errorf("Name(MXN) = %q", set.Name("MXN"))
	}
}
