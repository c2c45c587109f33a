package pennywise

import "errors"

// Sentinel errors surfaced by ledger operations. Callers are expected to
// match them with errors.Is; the wrapped message carries the offending id.
var (
	// ErrAccountNotFound is returned when a transaction references an
	// account id that does not exist in the store. No balance is written
	// when this happens, not even for the resolvable side of a transfer.
	ErrAccountNotFound = errors.New("account not found")

	// ErrReconciledTransaction is returned on any attempt to amend or
	// remove a transaction that was frozen by a finished reconciliation.
	ErrReconciledTransaction = errors.New("transaction is reconciled and immutable")

	// ErrReconciliationMismatch is returned by FinishReconciliation when
	// the cleared balance does not match the statement balance.
	ErrReconciliationMismatch = errors.New("cleared balance does not match statement balance")

	// ErrInvalidFrequency is returned for a schedule whose frequency is not
	// one of daily, weekly, monthly, yearly.
	ErrInvalidFrequency = errors.New("invalid schedule frequency")
)
