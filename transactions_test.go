package pennywise

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionValidate(t *testing.T) {
	valid := func() *Transaction {
		return &Transaction{Date: NewDate(2026, 1, 1), AccountID: "a", Type: Expense, Amount: M(10, "EUR")}
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{"valid expense", func(tx *Transaction) {}, false},
		{"unknown type", func(tx *Transaction) { tx.Type = "refund" }, true},
		{"missing date", func(tx *Transaction) { tx.Date = Date{} }, true},
		{"missing account", func(tx *Transaction) { tx.AccountID = "" }, true},
		{"negative amount", func(tx *Transaction) { tx.Amount = M(-10, "EUR") }, true},
		{"transfer without destination", func(tx *Transaction) { tx.Type = Transfer }, true},
		{"transfer with destination", func(tx *Transaction) { tx.Type = Transfer; tx.ToAccountID = "b" }, false},
		{"transfer onto itself", func(tx *Transaction) { tx.Type = Transfer; tx.ToAccountID = "a" }, true},
		{"expense with destination", func(tx *Transaction) { tx.ToAccountID = "b" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(tx)
			if err := tx.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCapture(t *testing.T) {
	rates := Rates{"USD": decimal.NewFromFloat(0.9)}

	tx := &Transaction{Amount: M(200, "USD")}
	tx.capture(rates)
	if !tx.ExchangeRate.Equal(decimal.NewFromFloat(0.9)) {
		t.Errorf("exchange rate = %s, want 0.9", tx.ExchangeRate)
	}
	if !tx.AmountBase.Equal(M(180, "EUR")) {
		t.Errorf("amount base = %s, want 180 EUR", tx.AmountBase)
	}

	base := &Transaction{Amount: M(50, "EUR")}
	base.capture(rates)
	if !base.ExchangeRate.Equal(decimal.NewFromInt(1)) || !base.AmountBase.Equal(M(50, "EUR")) {
		t.Errorf("base-currency capture = rate %s, base %s", base.ExchangeRate, base.AmountBase)
	}
}

func TestSumTotals(t *testing.T) {
	txs := []*Transaction{
		{Type: Income, AmountBase: M(3000, "EUR")},
		{Type: Expense, AmountBase: M(900, "EUR")},
		{Type: Expense, AmountBase: M(100, "EUR")},
		{Type: Transfer, AmountBase: M(500, "EUR")}, // transfers never count
	}
	totals := SumTotals(txs)
	if !totals.Income.Equal(M(3000, "EUR")) {
		t.Errorf("income = %s, want 3000 EUR", totals.Income)
	}
	if !totals.Expenses.Equal(M(1000, "EUR")) {
		t.Errorf("expenses = %s, want 1000 EUR", totals.Expenses)
	}
	if !totals.Net.Equal(M(2000, "EUR")) {
		t.Errorf("net = %s, want 2000 EUR", totals.Net)
	}
}
