// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ebzl/pennywise"
	"github.com/ebzl/pennywise/sqlstore"
)

// Register the subcommands.
// A main package calls Register() to install them, then Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountCmd{}, "accounts")
	c.Register(&accountsCmd{}, "accounts")
	c.Register(&networthCmd{}, "accounts")
	c.Register(&reconcileCmd{}, "accounts")

	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&logCmd{}, "transactions")

	c.Register(&scheduleCmd{}, "recurring")
	c.Register(&processCmd{}, "recurring")

	c.Register(&debtCmd{}, "debt")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

// .env is optional and loads before the flag defaults read the environment;
// flags and real environment variables win over it.
var _ = godotenv.Load()

var dbPath = flag.String("db", envOr("PW_DB", "pennywise.db"), "Path to the ledger database file")
var ratesFile = flag.String("rates", os.Getenv("PW_RATES"), "Path to a static YAML rates file (fetched online when empty)")

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("PW_LOG")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openStore opens the app database.
func openStore() (*sqlstore.SQLStore, error) {
	return sqlstore.Open(*dbPath)
}

// openLedger opens the app database wrapped in the ledger engine.
func openLedger() (*pennywise.Ledger, *sqlstore.SQLStore, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return pennywise.NewLedger(store).WithLogger(log.Logger), store, nil
}

// loadRates resolves today's conversion rates for every account currency,
// from the static file when one is configured, online otherwise.
func loadRates(store pennywise.Store) (pennywise.Rates, error) {
	if *ratesFile != "" {
		return pennywise.LoadRatesFile(*ratesFile)
	}
	accounts, err := store.Accounts()
	if err != nil {
		return nil, err
	}
	var currencies []string
	for _, a := range accounts {
		currencies = append(currencies, a.Currency)
	}
	return pennywise.FetchRates(currencies...)
}

// fail prints an error and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
