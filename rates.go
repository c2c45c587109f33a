package pennywise

import "github.com/shopspring/decimal"

// BaseCurrency is the currency every cross-currency amount is normalized to
// for aggregation (net worth, period totals, amount_base on transactions).
const BaseCurrency = "EUR"

// Rates maps a currency code to the value of one unit of that currency
// expressed in the base currency. The base currency itself maps to 1.
type Rates map[string]decimal.Decimal

// Rate returns the base-currency value of one unit of the given currency.
// A missing rate defaults to 1: an unknown currency is treated at par rather
// than silently zeroing amounts out of every aggregate.
func (r Rates) Rate(currency string) decimal.Decimal {
	if currency == BaseCurrency {
		return decimal.NewFromInt(1)
	}
	if rate, ok := r[currency]; ok && !rate.IsZero() {
		return rate
	}
	return decimal.NewFromInt(1)
}

// ToBase converts m into the base currency.
func (r Rates) ToBase(m Money) Money {
	if m.Currency() == BaseCurrency {
		return m
	}
	return M(m.Amount().Mul(r.Rate(m.Currency())), BaseCurrency)
}

// FromBase converts a base-currency amount into the given currency.
func (r Rates) FromBase(m Money, currency string) Money {
	if currency == BaseCurrency {
		return M(m.Amount(), BaseCurrency)
	}
	return M(m.Amount().Div(r.Rate(currency)), currency)
}

// Convert converts m into the target currency, composing through the base
// currency: amount -> base via the source rate, then base -> target via the
// inverse of the target rate. No rounding is applied.
func (r Rates) Convert(m Money, to string) Money {
	if m.Currency() == to {
		return m
	}
	return r.FromBase(r.ToBase(m), to)
}
