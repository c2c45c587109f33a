// Command pw is the pennywise CLI: a multi-currency personal ledger with
// recurring transactions, debt payoff planning and statement reconciliation.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ebzl/pennywise/cmd"
)

func main() {
	// Shell completion; a no-op outside completion mode.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"account":   {Flags: map[string]complete.Predictor{"name": predict.Nothing, "type": predict.Set{"checking", "savings", "credit_card", "loan", "brokerage", "investment", "cash"}}},
			"accounts":  {},
			"networth":  {},
			"add":       {Flags: map[string]complete.Predictor{"type": predict.Set{"income", "expense", "transfer"}}},
			"edit":      {},
			"rm":        {},
			"log":       {},
			"schedule":  {Flags: map[string]complete.Predictor{"freq": predict.Set{"daily", "weekly", "monthly", "yearly"}}},
			"process":   {},
			"debt":      {Flags: map[string]complete.Predictor{"strategy": predict.Set{"avalanche", "snowball", "custom"}}},
			"reconcile": {},
		},
		Flags: map[string]complete.Predictor{
			"db":    predict.Files("*.db"),
			"rates": predict.Files("*.yaml"),
		},
	}
	completion.Complete("pw")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
