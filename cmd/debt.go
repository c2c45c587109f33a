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

type debtCmd struct {
	name     string
	strategy string
	extra    float64
	plan     string
	save     bool
}

func (*debtCmd) Name() string     { return "debt" }
func (*debtCmd) Synopsis() string { return "project a debt payoff plan" }
func (*debtCmd) Usage() string {
	return `pw debt [-strategy <strategy>] [-extra <amount>] [-name <name> -save]
pw debt -plan <id>

  Builds a payoff plan from every active debt account and projects how long
  payoff takes and how much interest the extra monthly payment saves.
  -save stores the plan; -plan recalculates a stored one against current
  balances.

Usage Examples:
$ pw debt -strategy avalanche -extra 200
$ pw debt -strategy snowball -extra 150 -name "Car first" -save
`
}

func (c *debtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "Debt payoff", "Plan name")
	f.StringVar(&c.strategy, "strategy", "avalanche", "Payoff order: avalanche, snowball, custom")
	f.Float64Var(&c.extra, "extra", 0, "Extra payment on top of the minimums, per month, in the base currency")
	f.StringVar(&c.plan, "plan", "", "Id of a stored plan to recalculate")
	f.BoolVar(&c.save, "save", false, "Store the plan")
}

func (c *debtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	var plan *pennywise.DebtPayoffPlan
	if c.plan != "" {
		plans, err := store.Plans()
		if err != nil {
			return fail(err)
		}
		for _, p := range plans {
			if p.ID == c.plan {
				plan = p
				break
			}
		}
		if plan == nil {
			return fail(fmt.Errorf("plan %q not found", c.plan))
		}
		// Refresh the snapshot from the live accounts before recalculating.
		for i, d := range plan.Debts {
			account, err := store.Account(d.AccountID)
			if err != nil {
				continue
			}
			priority := plan.Debts[i].Priority
			plan.Debts[i] = pennywise.DebtFromAccount(account)
			plan.Debts[i].Priority = priority
		}
	} else {
		strategy, err := pennywise.ParseStrategy(c.strategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		accounts, err := store.Accounts()
		if err != nil {
			return fail(err)
		}
		var debts []pennywise.Debt
		for _, a := range accounts {
			if a.Active && a.Type.IsLiability() && !a.Balance.IsZero() {
				debts = append(debts, pennywise.DebtFromAccount(a))
			}
		}
		if len(debts) == 0 {
			fmt.Println("No active debt accounts; nothing to plan.")
			return subcommands.ExitSuccess
		}
		plan = &pennywise.DebtPayoffPlan{
			Name:                c.name,
			Strategy:            strategy,
			ExtraMonthlyPayment: c.extra,
			Debts:               debts,
		}
	}

	proj := plan.Recalculate()
	printMarkdown(renderer.DebtPlanMarkdown(plan, proj))

	switch {
	case c.plan != "":
		if err := store.UpdatePlan(plan); err != nil {
			return fail(err)
		}
	case c.save:
		if err := store.CreatePlan(plan); err != nil {
			return fail(err)
		}
		fmt.Printf("Saved plan %q (%s).\n", plan.Name, plan.ID)
	}
	return subcommands.ExitSuccess
}
