package pennywise

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsLiability(t *testing.T) {
	for typ, want := range map[AccountType]bool{
		Checking:   false,
		Savings:    false,
		Brokerage:  false,
		Investment: false,
		Cash:       false,
		CreditCard: true,
		Loan:       true,
	} {
		if got := typ.IsLiability(); got != want {
			t.Errorf("%s.IsLiability() = %v, want %v", typ, got, want)
		}
	}
}

func TestNewAccount(t *testing.T) {
	rates := Rates{"USD": decimal.NewFromFloat(0.9)}
	a := NewAccount("Travel", Checking, "USD", M(100, "USD"), rates)

	if !a.Active {
		t.Error("new account should be active")
	}
	if !a.Balance.Equal(M(100, "USD")) {
		t.Errorf("balance = %s, want 100 USD", a.Balance)
	}
	if !a.OpeningBalance.Equal(M(100, "USD")) {
		t.Errorf("opening = %s, want 100 USD", a.OpeningBalance)
	}
	if !a.BalanceBase.Equal(M(90, "EUR")) || a.BalanceBase.Currency() != BaseCurrency {
		t.Errorf("balance base = %s %s, want 90 EUR", a.BalanceBase.Amount(), a.BalanceBase.Currency())
	}
}

func TestNetWorth(t *testing.T) {
	rates := testRates()
	checking := NewAccount("Checking", Checking, "EUR", M(1000, "EUR"), rates)
	usd := NewAccount("Travel", Checking, "USD", M(100, "USD"), rates)
	visa := NewAccount("Visa", CreditCard, "EUR", M(400, "EUR"), rates)

	// 1000 + 90 - 400.
	got := NetWorth([]*Account{checking, usd, visa})
	if !got.Equal(M(690, "EUR")) {
		t.Errorf("net worth = %s, want 690 EUR", got)
	}
	if got.Currency() != BaseCurrency {
		t.Errorf("net worth currency = %s, want %s", got.Currency(), BaseCurrency)
	}
}

func TestParseAccountType(t *testing.T) {
	if _, err := ParseAccountType("checking"); err != nil {
		t.Errorf("checking should parse: %v", err)
	}
	if _, err := ParseAccountType("yacht"); err == nil {
		t.Error("unknown type should fail")
	}
}
