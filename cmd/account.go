package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ebzl/pennywise"
	"github.com/ebzl/pennywise/renderer"
)

type accountCmd struct {
	name       string
	typ        string
	currency   string
	opening    float64
	rate       float64
	minPayment float64
	close      string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "open or close an account" }
func (*accountCmd) Usage() string {
	return `pw account -name <name> [-type <type>] [-currency <code>] [-opening <amount>]
pw account -close <id>

  Opens a new account, or closes an existing one with -close. Debt accounts
  (type loan or credit_card) can carry -rate and -min-payment for payoff
  planning.

Usage Examples:
$ pw account -name "Main Checking" -type checking -currency EUR -opening 1200
$ pw account -name Visa -type credit_card -opening 350 -rate 19.9 -min-payment 25
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required)")
	f.StringVar(&c.typ, "type", "checking", "Account type: checking, savings, credit_card, loan, brokerage, investment, cash")
	f.StringVar(&c.currency, "currency", pennywise.BaseCurrency, "Account currency, 3-letter code")
	f.Float64Var(&c.opening, "opening", 0, "Opening balance")
	f.Float64Var(&c.rate, "rate", 0, "Annual interest rate in percent (debt accounts)")
	f.Float64Var(&c.minPayment, "min-payment", 0, "Minimum monthly payment (debt accounts)")
	f.StringVar(&c.close, "close", "", "Id of the account to close")
}

func (c *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if c.close != "" {
		account, err := store.Account(c.close)
		if err != nil {
			return fail(err)
		}
		account.Active = false
		if err := store.UpdateAccount(account); err != nil {
			return fail(err)
		}
		fmt.Printf("Closed account %q.\n", account.Name)
		return subcommands.ExitSuccess
	}

	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	typ, err := pennywise.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rates, err := loadRates(store)
	if err != nil {
		return fail(err)
	}
	account := pennywise.NewAccount(c.name, typ, c.currency, pennywise.M(c.opening, c.currency), rates)
	account.InterestRate = decimal.NewFromFloat(c.rate)
	account.MinimumPayment = pennywise.M(c.minPayment, c.currency)
	if err := store.CreateAccount(account); err != nil {
		return fail(err)
	}
	fmt.Printf("Opened account %q (%s).\n", account.Name, account.ID)
	return subcommands.ExitSuccess
}

type accountsCmd struct{ all bool }

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and balances" }
func (*accountsCmd) Usage() string {
	return `pw accounts [-all]

  Lists active accounts with their balances. -all includes closed accounts.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include closed accounts")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	accounts, err := store.Accounts()
	if err != nil {
		return fail(err)
	}
	shown := accounts[:0]
	for _, a := range accounts {
		if c.all || a.Active {
			shown = append(shown, a)
		}
	}
	printMarkdown(renderer.NetWorthMarkdown(shown, pennywise.NetWorth(shown)))
	return subcommands.ExitSuccess
}

type networthCmd struct{}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "total net worth across all accounts" }
func (*networthCmd) Usage() string {
	return `pw networth

  Prints the net worth: assets minus liabilities, in the base currency.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {}

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	accounts, err := store.Accounts()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Net worth: %s\n", pennywise.NetWorth(accounts))
	return subcommands.ExitSuccess
}
