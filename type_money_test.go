package pennywise

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	a := M(10.5, "EUR")
	b := M(2, "EUR")

	if got := a.Add(b); !got.Equal(M(12.5, "EUR")) {
		t.Errorf("Add = %s", got.Amount())
	}
	if got := a.Sub(b); !got.Equal(M(8.5, "EUR")) {
		t.Errorf("Sub = %s", got.Amount())
	}
	if got := a.Neg(); !got.Equal(M(-10.5, "EUR")) {
		t.Errorf("Neg = %s", got.Amount())
	}

	// The zero Money is a weak identity for any currency.
	var zero Money
	if got := zero.Add(a); !got.Equal(a) || got.Currency() != "EUR" {
		t.Errorf("zero.Add = %s %s", got.Amount(), got.Currency())
	}
}

func TestMoneyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding EUR and USD should panic")
		}
	}()
	M(1, "EUR").Add(M(1, "USD"))
}

func TestMoneyMulRate(t *testing.T) {
	got := M(100, "USD").MulRate(decimal.NewFromFloat(0.9))
	if !got.Equal(M(90, "USD")) || got.Currency() != "USD" {
		t.Errorf("MulRate = %s %s, want 90 USD", got.Amount(), got.Currency())
	}
}

func TestMoneyJSON(t *testing.T) {
	// All digits survive the roundtrip; no rounding on write.
	in := M(decimal.RequireFromString("10.123456789"), "USD")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Money
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in) || out.Currency() != "USD" {
		t.Errorf("roundtrip = %s %s, want %s USD", out.Amount(), out.Currency(), in.Amount())
	}
}
