package pennywise

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultRatesURL serves daily reference rates quoted against the euro.
const DefaultRatesURL = "https://api.frankfurter.dev/v1/latest"

type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates retrieves today's conversion rates for the given currencies.
// Responses are cached on disk for the day, so repeated CLI invocations hit
// the network at most once.
func FetchRates(currencies ...string) (Rates, error) {
	return fetchRates(cachedClient(), DefaultRatesURL, currencies)
}

func fetchRates(client *http.Client, addr string, currencies []string) (Rates, error) {
	q := url.Values{}
	q.Set("base", BaseCurrency)
	var symbols []string
	for _, c := range currencies {
		if c != "" && c != BaseCurrency {
			symbols = append(symbols, c)
		}
	}
	if len(symbols) > 0 {
		q.Set("symbols", strings.Join(symbols, ","))
	}

	var data ratesResponse
	if err := getJSON(client, addr+"?"+q.Encode(), &data); err != nil {
		return nil, fmt.Errorf("could not fetch rates: %w", err)
	}

	// The service quotes units of foreign currency per euro; the ledger
	// stores euros per unit, so invert.
	rates := Rates{BaseCurrency: decimal.NewFromInt(1)}
	for currency, perBase := range data.Rates {
		if perBase == 0 {
			continue
		}
		rates[currency] = decimal.NewFromInt(1).Div(decimal.NewFromFloat(perBase))
	}
	return rates, nil
}

// LoadRatesFile reads a static rates file: a YAML mapping from currency code
// to its value in the base currency, e.g. "USD: 0.92". Useful offline and in
// tests.
func LoadRatesFile(path string) (Rates, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rates file: %w", err)
	}
	var raw map[string]float64
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("could not parse rates file %q: %w", path, err)
	}
	rates := Rates{BaseCurrency: decimal.NewFromInt(1)}
	for currency, v := range raw {
		rates[currency] = decimal.NewFromFloat(v)
	}
	return rates, nil
}
