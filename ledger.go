package pennywise

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Direction selects whether a transaction's balance effect is being applied
// or undone. Revert is the exact negation of Apply.
type Direction int

const (
	Apply  Direction = 1
	Revert Direction = -1
)

// Ledger is the single source of truth for how a transaction affects account
// balances. It mutates Account records through the Store; it never mutates
// other transactions.
//
// The model is single-user, single-writer: operations are synchronous and
// each logical operation (one record, one amend, one removal, one ProcessDue
// pass) loads the accounts it needs once and writes them back once, so the
// multi-step revert-then-apply sequences appear atomic to the caller.
type Ledger struct {
	store Store
	log   zerolog.Logger
}

// NewLedger creates a ledger engine over the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, log: zerolog.Nop()}
}

// WithLogger returns a copy of the ledger that logs through the given logger.
func (l *Ledger) WithLogger(log zerolog.Logger) *Ledger {
	return &Ledger{store: l.store, log: log}
}

// Store exposes the underlying record store for read-mostly collaborators.
func (l *Ledger) Store() Store { return l.store }

// Delta computes the signed balance change, in the account's own currency,
// that applying t causes on account. The account must be the transaction's
// source or destination.
//
// Sign rules: income adds, expense subtracts, a transfer subtracts from its
// source and adds to its destination; all four invert on liability accounts,
// where a positive balance is money owed.
func Delta(t *Transaction, account *Account, rates Rates) (Money, error) {
	var sign int
	switch {
	case t.Type == Income && account.ID == t.AccountID:
		sign = 1
	case t.Type == Expense && account.ID == t.AccountID:
		sign = -1
	case t.Type == Transfer && account.ID == t.AccountID:
		sign = -1
	case t.Type == Transfer && account.ID == t.ToAccountID:
		sign = 1
	default:
		return Money{}, fmt.Errorf("account %q is not part of transaction %q", account.ID, t.ID)
	}
	if account.Type.IsLiability() {
		sign = -sign
	}

	amount := t.amountIn(account.Currency, rates)
	if sign < 0 {
		amount = amount.Neg()
	}
	return amount, nil
}

// amountIn converts the transaction amount into the given currency. The
// transaction's own leg uses the exchange rate stamped at save time, so that
// replaying the conversion during an amendment or removal is deterministic;
// the target leg uses the rates supplied by the caller.
func (t *Transaction) amountIn(currency string, rates Rates) Money {
	if t.Amount.Currency() == currency {
		return t.Amount
	}
	rate := t.ExchangeRate
	if rate.IsZero() {
		rate = rates.Rate(t.Amount.Currency())
	}
	base := M(t.Amount.Amount().Mul(rate), BaseCurrency)
	return rates.FromBase(base, currency)
}

// unitOfWork accumulates account mutations in memory for one logical
// operation and writes every touched account back exactly once.
type unitOfWork struct {
	store    Store
	accounts map[string]*Account
	dirty    []string // ids in first-touched order
}

func (l *Ledger) begin() (*unitOfWork, error) {
	all, err := l.store.Accounts()
	if err != nil {
		return nil, fmt.Errorf("could not load accounts: %w", err)
	}
	accounts := make(map[string]*Account, len(all))
	for _, a := range all {
		accounts[a.ID] = a
	}
	return &unitOfWork{store: l.store, accounts: accounts}, nil
}

func (u *unitOfWork) account(id string) (*Account, error) {
	a, ok := u.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, id)
	}
	return a, nil
}

func (u *unitOfWork) touch(id string) {
	for _, d := range u.dirty {
		if d == id {
			return
		}
	}
	u.dirty = append(u.dirty, id)
}

// applyTx applies (or reverts) the transaction's effect on the in-memory
// accounts. Both accounts of a transfer are resolved before either side is
// mutated, so a missing destination never leaves a half-applied transfer.
func (u *unitOfWork) applyTx(t *Transaction, dir Direction, rates Rates) error {
	from, err := u.account(t.AccountID)
	if err != nil {
		return err
	}
	var to *Account
	if t.Type == Transfer {
		if to, err = u.account(t.ToAccountID); err != nil {
			return err
		}
	}

	delta, err := Delta(t, from, rates)
	if err != nil {
		return err
	}
	if dir == Revert {
		delta = delta.Neg()
	}
	from.setBalance(from.Balance.Add(delta), rates)
	u.touch(from.ID)

	if to != nil {
		delta, err := Delta(t, to, rates)
		if err != nil {
			return err
		}
		if dir == Revert {
			delta = delta.Neg()
		}
		to.setBalance(to.Balance.Add(delta), rates)
		u.touch(to.ID)
	}
	return nil
}

func (u *unitOfWork) flush() error {
	for _, id := range u.dirty {
		if err := u.store.UpdateAccount(u.accounts[id]); err != nil {
			return fmt.Errorf("could not write account %q: %w", id, err)
		}
	}
	return nil
}

// Record validates, stamps, persists and applies a new transaction. On any
// error, no balance is written.
func (l *Ledger) Record(t *Transaction, rates Rates) (*Transaction, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.capture(rates)

	u, err := l.begin()
	if err != nil {
		return nil, err
	}
	if err := u.applyTx(t, Apply, rates); err != nil {
		return nil, err
	}
	if err := l.store.CreateTransaction(t); err != nil {
		return nil, fmt.Errorf("could not create transaction: %w", err)
	}
	if err := u.flush(); err != nil {
		return nil, err
	}
	l.log.Debug().Str("tx", t.ID).Str("type", string(t.Type)).Msg("recorded transaction")
	return t, nil
}

// Amend replaces the transaction identified by id with upd. The old balance
// effect is reverted before the new one is applied; doing it the other way
// round would corrupt the balance whenever old and new share an account.
func (l *Ledger) Amend(id string, upd *Transaction, rates Rates) (*Transaction, error) {
	old, err := l.store.Transaction(id)
	if err != nil {
		return nil, err
	}
	if old.Reconciled {
		return nil, fmt.Errorf("%w: %q", ErrReconciledTransaction, id)
	}
	upd.ID = id
	upd.Reconciled = false
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	upd.capture(rates)

	u, err := l.begin()
	if err != nil {
		return nil, err
	}
	if err := u.applyTx(old, Revert, rates); err != nil {
		return nil, err
	}
	if err := u.applyTx(upd, Apply, rates); err != nil {
		return nil, err
	}
	if err := l.store.UpdateTransaction(upd); err != nil {
		return nil, fmt.Errorf("could not update transaction: %w", err)
	}
	if err := u.flush(); err != nil {
		return nil, err
	}
	l.log.Debug().Str("tx", id).Msg("amended transaction")
	return upd, nil
}

// Remove reverts the transaction's balance effect and deletes it.
func (l *Ledger) Remove(id string, rates Rates) error {
	old, err := l.store.Transaction(id)
	if err != nil {
		return err
	}
	if old.Reconciled {
		return fmt.Errorf("%w: %q", ErrReconciledTransaction, id)
	}

	u, err := l.begin()
	if err != nil {
		return err
	}
	if err := u.applyTx(old, Revert, rates); err != nil {
		return err
	}
	if err := l.store.DeleteTransaction(id); err != nil {
		return fmt.Errorf("could not delete transaction: %w", err)
	}
	if err := u.flush(); err != nil {
		return err
	}
	l.log.Debug().Str("tx", id).Msg("removed transaction")
	return nil
}
