package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ebzl/pennywise"
	"github.com/ebzl/pennywise/renderer"
)

type reconcileCmd struct {
	account   string
	statement float64
	date      string
	clear     string
	finish    bool
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "match the ledger against a bank statement" }
func (*reconcileCmd) Usage() string {
	return `pw reconcile -account <id> -statement <balance> -clear <id,id,...> [-d <date>] [-finish]

  Compares the statement's ending balance against the cleared entries.
  Without -finish only the summary is printed. With -finish, and only when
  the difference is zero, the cleared entries are locked against edits and
  the account records the statement as its new anchor.

Usage Examples:
$ pw reconcile -account a1 -statement 1245.10 -clear t1,t2,t3
$ pw reconcile -account a1 -statement 1245.10 -clear t1,t2,t3 -finish
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account to reconcile (required)")
	f.Float64Var(&c.statement, "statement", 0, "Statement ending balance, in the account currency")
	f.StringVar(&c.date, "d", "", "Statement date YYYY-MM-DD (defaults to today)")
	f.StringVar(&c.clear, "clear", "", "Comma-separated transaction ids matched against the statement")
	f.BoolVar(&c.finish, "finish", false, "Lock in the reconciliation (requires zero difference)")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -account is required.")
		return subcommands.ExitUsageError
	}
	ledger, store, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	account, err := store.Account(c.account)
	if err != nil {
		return fail(err)
	}
	rates, err := loadRates(store)
	if err != nil {
		return fail(err)
	}

	var cleared []string
	for _, id := range strings.Split(c.clear, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cleared = append(cleared, id)
		}
	}
	statement := pennywise.M(c.statement, account.Currency)

	if !c.finish {
		sum, err := ledger.SummarizeReconciliation(c.account, cleared, statement, rates)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.ReconciliationMarkdown(account, sum))
		return subcommands.ExitSuccess
	}

	date := pennywise.Today()
	if c.date != "" {
		if date, err = pennywise.ParseDate(c.date); err != nil {
			return fail(err)
		}
	}
	sum, err := ledger.FinishReconciliation(c.account, cleared, date, statement, rates)
	if err != nil {
		if sum != nil {
			printMarkdown(renderer.ReconciliationMarkdown(account, sum))
		}
		return fail(err)
	}
	fmt.Printf("Reconciled %q through %s, %d entries locked.\n", account.Name, date, sum.Cleared)
	return subcommands.ExitSuccess
}
