package pennywise

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TxType identifies the effect a transaction has on account balances.
type TxType string

const (
	Income   TxType = "income"
	Expense  TxType = "expense"
	Transfer TxType = "transfer"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(s); t {
	case Income, Expense, Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is a single ledger entry. Amount is unsigned and carries its
// own currency; the sign of its effect on a balance is derived from Type and
// the account's liability flag (see Delta).
//
// AmountBase and ExchangeRate are captured when the transaction is recorded,
// so that a later amendment or removal replays the exact same conversion and
// leaves balances where a perfect revert would.
type Transaction struct {
	ID            string          `json:"id"`
	Date          Date            `json:"date"`
	AccountID     string          `json:"account_id"`
	ToAccountID   string          `json:"to_account_id,omitempty"` // transfers only
	Type          TxType          `json:"type"`
	Amount        Money           `json:"amount"`
	AmountBase    Money           `json:"amount_base"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	CategoryID    string          `json:"category_id,omitempty"`    // income/expense only
	SubcategoryID string          `json:"subcategory_id,omitempty"` // income/expense only
	Payee         string          `json:"payee,omitempty"`
	Memo          string          `json:"memo,omitempty"`
	Reconciled    bool            `json:"reconciled"`
}

// Validate checks a transaction for structural correctness before it is
// recorded or amended.
func (t *Transaction) Validate() error {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is missing")
	}
	if t.AccountID == "" {
		return fmt.Errorf("transaction account is missing")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must not be negative, got %s", t.Amount)
	}
	if t.Type == Transfer && t.ToAccountID == "" {
		return fmt.Errorf("transfer needs a destination account")
	}
	if t.Type == Transfer && t.ToAccountID == t.AccountID {
		return fmt.Errorf("transfer source and destination must differ, got %q twice", t.AccountID)
	}
	if t.Type != Transfer && t.ToAccountID != "" {
		return fmt.Errorf("%s transaction must not have a destination account", t.Type)
	}
	return nil
}

// capture stamps the base-currency amount and the exchange rate in effect
// when the transaction is saved. Historical replays use the stamped rate.
func (t *Transaction) capture(rates Rates) {
	t.ExchangeRate = rates.Rate(t.Amount.Currency())
	t.AmountBase = M(t.Amount.Amount().Mul(t.ExchangeRate), BaseCurrency)
}

// Totals are period sums over a transaction set, in the base currency.
// Transfers move money between accounts and are excluded.
type Totals struct {
	Income   Money
	Expenses Money
	Net      Money
}

// SumTotals computes base-currency income and expense totals.
func SumTotals(txs []*Transaction) Totals {
	totals := Totals{
		Income:   M(0, BaseCurrency),
		Expenses: M(0, BaseCurrency),
	}
	for _, t := range txs {
		switch t.Type {
		case Income:
			totals.Income = totals.Income.Add(t.AmountBase)
		case Expense:
			totals.Expenses = totals.Expenses.Add(t.AmountBase)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expenses)
	return totals
}
