package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ebzl/pennywise"
	"github.com/ebzl/pennywise/renderer"
)

// txFlags are the flags shared by the add and edit subcommands.
type txFlags struct {
	date     string
	typ      string
	account  string
	to       string
	amount   float64
	currency string
	category string
	payee    string
	memo     string
}

func (c *txFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date YYYY-MM-DD (defaults to today)")
	f.StringVar(&c.typ, "type", "expense", "Transaction type: income, expense, transfer")
	f.StringVar(&c.account, "account", "", "Source account id (required)")
	f.StringVar(&c.to, "to", "", "Destination account id (transfers)")
	f.Float64Var(&c.amount, "amount", 0, "Amount, always unsigned (required)")
	f.StringVar(&c.currency, "currency", "", "Amount currency (defaults to the account currency)")
	f.StringVar(&c.category, "category", "", "Category id")
	f.StringVar(&c.payee, "payee", "", "Payee")
	f.StringVar(&c.memo, "memo", "", "Memo")
}

func (c *txFlags) build(store pennywise.Store) (*pennywise.Transaction, error) {
	date := pennywise.Today()
	if c.date != "" {
		var err error
		if date, err = pennywise.ParseDate(c.date); err != nil {
			return nil, err
		}
	}
	typ, err := pennywise.ParseTxType(c.typ)
	if err != nil {
		return nil, err
	}
	currency := c.currency
	if currency == "" {
		account, err := store.Account(c.account)
		if err != nil {
			return nil, err
		}
		currency = account.Currency
	}
	return &pennywise.Transaction{
		Date:        date,
		AccountID:   c.account,
		ToAccountID: c.to,
		Type:        typ,
		Amount:      pennywise.M(c.amount, currency),
		CategoryID:  c.category,
		Payee:       c.payee,
		Memo:        c.memo,
	}, nil
}

type addCmd struct{ tx txFlags }

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction" }
func (*addCmd) Usage() string {
	return `pw add -account <id> -amount <amount> [-type <type>] [-d <date>] [flags]

  Records a transaction and updates the affected balances. Amounts are always
  unsigned; the type decides the direction. Transfers need -to.

Usage Examples:
$ pw add -account a1 -amount 45.20 -payee "Grocer"
$ pw add -account a1 -type income -amount 3200 -payee "ACME payroll"
$ pw add -account a1 -type transfer -to cc1 -amount 200 -memo "card payment"
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.tx.register(f) }

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	rates, err := loadRates(store)
	if err != nil {
		return fail(err)
	}
	tx, err := c.tx.build(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if tx, err = ledger.Record(tx, rates); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s of %s (%s).\n", tx.Type, tx.Amount, tx.ID)
	return subcommands.ExitSuccess
}

type editCmd struct {
	id string
	tx txFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "amend a recorded transaction" }
func (*editCmd) Usage() string {
	return `pw edit -id <id> [transaction flags]

  Replaces a transaction. Balances end up exactly as if the transaction had
  been recorded this way in the first place. Reconciled transactions cannot
  be edited.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to amend (required)")
	c.tx.register(f)
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	ledger, store, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	rates, err := loadRates(store)
	if err != nil {
		return fail(err)
	}
	tx, err := c.tx.build(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := ledger.Amend(c.id, tx, rates); err != nil {
		return fail(err)
	}
	fmt.Printf("Amended transaction %s.\n", c.id)
	return subcommands.ExitSuccess
}

type rmCmd struct{ id string }

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a transaction" }
func (*rmCmd) Usage() string {
	return `pw rm -id <id>

  Removes a transaction, reverting its effect on balances. Reconciled
  transactions cannot be removed.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to remove (required)")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	ledger, store, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	rates, err := loadRates(store)
	if err != nil {
		return fail(err)
	}
	if err := ledger.Remove(c.id, rates); err != nil {
		return fail(err)
	}
	fmt.Printf("Removed transaction %s.\n", c.id)
	return subcommands.ExitSuccess
}

type logCmd struct {
	account string
	from    string
	to      string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list transactions with period totals" }
func (*logCmd) Usage() string {
	return `pw log [-account <id>] [-from <date>] [-to <date>]

  Lists transactions, newest last, with income and expense totals in the base
  currency.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Only transactions touching this account")
	f.StringVar(&c.from, "from", "", "Start date YYYY-MM-DD, inclusive")
	f.StringVar(&c.to, "to", "", "End date YYYY-MM-DD, inclusive")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	var from, to pennywise.Date
	if c.from != "" {
		if from, err = pennywise.ParseDate(c.from); err != nil {
			return fail(err)
		}
	}
	if c.to != "" {
		if to, err = pennywise.ParseDate(c.to); err != nil {
			return fail(err)
		}
	}

	txs, err := store.Transactions(func(t *pennywise.Transaction) bool {
		if c.account != "" && t.AccountID != c.account && t.ToAccountID != c.account {
			return false
		}
		if !from.IsZero() && t.Date.Before(from) {
			return false
		}
		if !to.IsZero() && t.Date.After(to) {
			return false
		}
		return true
	})
	if err != nil {
		return fail(err)
	}

	accounts, err := store.Accounts()
	if err != nil {
		return fail(err)
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	printMarkdown(renderer.TransactionsMarkdown(txs, names))
	return subcommands.ExitSuccess
}
