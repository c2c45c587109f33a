package pennywise

import (
	"fmt"
)

// ReconciliationSummary compares a bank statement against the ledger.
// Difference is cleared minus statement; a reconciliation only finishes at
// zero difference.
type ReconciliationSummary struct {
	BeginningBalance Money // balance as of the last finished reconciliation
	ClearedBalance   Money // beginning plus every cleared entry's effect
	StatementBalance Money
	Difference       Money
	Cleared          int // entries marked cleared in this session
	Outstanding      int // unreconciled entries left uncleared
}

// SummarizeReconciliation computes the running state of a reconciliation
// session: the account, the set of transaction ids the user has marked as
// cleared, and the statement's ending balance in the account currency.
//
// The beginning balance is the balance recorded by the last finished
// reconciliation, or zero if the account has never been reconciled. Cleared
// entries contribute the same signed delta they applied to the live balance,
// liability sign rules included.
func (l *Ledger) SummarizeReconciliation(accountID string, clearedIDs []string, statementBalance Money, rates Rates) (*ReconciliationSummary, error) {
	account, err := l.store.Account(accountID)
	if err != nil {
		return nil, err
	}

	candidates, err := l.store.Transactions(func(t *Transaction) bool {
		return !t.Reconciled && (t.AccountID == accountID || t.ToAccountID == accountID)
	})
	if err != nil {
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}

	cleared := make(map[string]bool, len(clearedIDs))
	for _, id := range clearedIDs {
		cleared[id] = true
	}

	beginning := account.LastReconciledBalance
	if account.LastReconciledDate.IsZero() || beginning.IsZero() {
		beginning = M(0, account.Currency)
	}

	sum := &ReconciliationSummary{
		BeginningBalance: beginning,
		ClearedBalance:   beginning,
		StatementBalance: statementBalance,
	}
	for _, t := range candidates {
		if !cleared[t.ID] {
			sum.Outstanding++
			continue
		}
		delta, err := Delta(t, account, rates)
		if err != nil {
			return nil, err
		}
		sum.ClearedBalance = sum.ClearedBalance.Add(delta)
		sum.Cleared++
	}
	sum.Difference = sum.ClearedBalance.Sub(statementBalance)
	return sum, nil
}

// FinishReconciliation locks in a reconciliation session. The cleared
// balance must match the statement balance exactly; otherwise nothing is
// written and ErrReconciliationMismatch is returned with the difference.
//
// On success every cleared transaction is marked reconciled, freezing it
// against amendment and removal, and the account records the statement date
// and balance as its new reconciliation anchor.
func (l *Ledger) FinishReconciliation(accountID string, clearedIDs []string, statementDate Date, statementBalance Money, rates Rates) (*ReconciliationSummary, error) {
	sum, err := l.SummarizeReconciliation(accountID, clearedIDs, statementBalance, rates)
	if err != nil {
		return nil, err
	}
	if !sum.Difference.IsZero() {
		return sum, fmt.Errorf("%w: off by %s", ErrReconciliationMismatch, sum.Difference)
	}

	for _, id := range clearedIDs {
		t, err := l.store.Transaction(id)
		if err != nil {
			return nil, err
		}
		// Only freeze entries that counted toward the cleared balance. Ids
		// pointing at other accounts or already reconciled entries were not
		// candidates and must not be touched.
		if t.Reconciled || (t.AccountID != accountID && t.ToAccountID != accountID) {
			continue
		}
		t.Reconciled = true
		if err := l.store.UpdateTransaction(t); err != nil {
			return nil, fmt.Errorf("could not mark %q reconciled: %w", id, err)
		}
	}

	account, err := l.store.Account(accountID)
	if err != nil {
		return nil, err
	}
	account.LastReconciledDate = statementDate
	account.LastReconciledBalance = statementBalance
	if err := l.store.UpdateAccount(account); err != nil {
		return nil, fmt.Errorf("could not update account: %w", err)
	}
	l.log.Info().Str("account", accountID).Int("cleared", sum.Cleared).
		Str("date", statementDate.String()).Msg("reconciliation finished")
	return sum, nil
}
