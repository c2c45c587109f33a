package pennywise

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of account and, through IsLiability,
// the sign convention its balance follows.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit_card"
	Loan       AccountType = "loan"
	Brokerage  AccountType = "brokerage"
	Investment AccountType = "investment"
	Cash       AccountType = "cash"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case Checking, Savings, CreditCard, Loan, Brokerage, Investment, Cash:
		return t, nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// IsLiability reports whether a positive balance on this account type
// represents money owed. Liability accounts invert the usual sign
// convention: an expense charged to a credit card increases its balance,
// a payment transferred to it decreases its balance.
//
// This predicate is the single copy of the rule; the ledger mutator, the
// reconciliation summary and the net worth aggregation all go through it.
func (t AccountType) IsLiability() bool {
	return t == Loan || t == CreditCard
}

// Account is a user account holding a balance in its own currency, plus the
// same value converted into the base currency for aggregation.
//
// Invariant: BalanceBase == Balance * rate(Currency) after every mutation.
type Account struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Type                  AccountType     `json:"type"`
	Currency              string          `json:"currency"`
	Balance               Money           `json:"balance"`
	BalanceBase           Money           `json:"balance_base"`
	OpeningBalance        Money           `json:"opening_balance"`
	InterestRate          decimal.Decimal `json:"interest_rate"`  // annual %, debt accounts only
	MinimumPayment        Money           `json:"minimum_payment"` // debt accounts only
	LastReconciledDate    Date            `json:"last_reconciled_date"`
	LastReconciledBalance Money           `json:"last_reconciled_balance"`
	Active                bool            `json:"is_active"`
}

// NewAccount creates an active account seeded with its opening balance, with
// the base-currency balance derived from the given rates.
func NewAccount(name string, typ AccountType, currency string, opening Money, rates Rates) *Account {
	a := &Account{
		Name:           name,
		Type:           typ,
		Currency:       currency,
		OpeningBalance: M(opening.Amount(), currency),
		Active:         true,
	}
	a.setBalance(M(opening.Amount(), currency), rates)
	return a
}

// setBalance writes the balance and restores the BalanceBase invariant.
func (a *Account) setBalance(b Money, rates Rates) {
	a.Balance = b
	a.BalanceBase = rates.ToBase(b)
}

// NetWorth sums account base-currency balances: assets count positive,
// liabilities (money owed) count negative.
func NetWorth(accounts []*Account) Money {
	total := M(0, BaseCurrency)
	for _, a := range accounts {
		if a.Type.IsLiability() {
			total = total.Sub(a.BalanceBase)
		} else {
			total = total.Add(a.BalanceBase)
		}
	}
	return total
}
