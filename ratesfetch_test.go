package pennywise

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetchRates_InvertsQuotes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"base":"EUR","date":"2026-08-31","rates":{"USD":1.25,"GBP":0.8}}`))
	}))
	defer server.Close()

	rates, err := fetchRates(&http.Client{}, server.URL, []string{"USD", "GBP", "EUR", ""})
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "base=EUR&symbols=USD%2CGBP" {
		t.Errorf("query = %q", gotQuery)
	}

	// 1.25 USD per EUR means 1 USD is worth 0.8 EUR.
	if got := rates.Rate("USD"); !got.Equal(decimal.NewFromFloat(0.8)) {
		t.Errorf("USD rate = %s, want 0.8", got)
	}
	if got := rates.Rate("GBP"); !got.Equal(decimal.NewFromFloat(1.25)) {
		t.Errorf("GBP rate = %s, want 1.25", got)
	}
	if got := rates.Rate(BaseCurrency); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("base rate = %s, want 1", got)
	}
}

func TestFetchRates_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := fetchRates(&http.Client{}, server.URL, nil); err == nil {
		t.Error("a failing rates service should surface an error")
	}
}

func TestLoadRatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte("USD: 0.9\nGBP: 1.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rates, err := LoadRatesFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := rates.Rate("USD"); !got.Equal(decimal.NewFromFloat(0.9)) {
		t.Errorf("USD rate = %s, want 0.9", got)
	}
	if got := rates.Rate("GBP"); !got.Equal(decimal.NewFromFloat(1.2)) {
		t.Errorf("GBP rate = %s, want 1.2", got)
	}

	if _, err := LoadRatesFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing rates file should fail")
	}
}
