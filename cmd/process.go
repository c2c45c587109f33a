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

type scheduleCmd struct {
	name      string
	tx        txFlags
	frequency string
	interval  int
	start     string
	end       string
	stop      string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "create or stop a recurring schedule" }
func (*scheduleCmd) Usage() string {
	return `pw schedule -name <name> -account <id> -amount <amount> -freq <frequency> [flags]
pw schedule -stop <id>

  Creates a recurring schedule. Due occurrences are materialized by
  'pw process'. -stop deactivates a schedule without touching past
  occurrences.

Usage Examples:
$ pw schedule -name Rent -account a1 -amount 900 -freq monthly -start 2026-09-01
$ pw schedule -name Salary -account a1 -type income -amount 3200 -freq monthly
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Schedule name (required)")
	c.tx.register(f)
	f.StringVar(&c.frequency, "freq", "monthly", "Frequency: daily, weekly, monthly, yearly")
	f.IntVar(&c.interval, "interval", 1, "Every N frequency units")
	f.StringVar(&c.start, "start", "", "First occurrence date (defaults to today)")
	f.StringVar(&c.end, "end", "", "Last date an occurrence may fall on")
	f.StringVar(&c.stop, "stop", "", "Id of the schedule to deactivate")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	if c.stop != "" {
		s, err := store.Schedule(c.stop)
		if err != nil {
			return fail(err)
		}
		s.Active = false
		if err := store.UpdateSchedule(s); err != nil {
			return fail(err)
		}
		fmt.Printf("Stopped schedule %q.\n", s.Name)
		return subcommands.ExitSuccess
	}

	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	tx, err := c.tx.build(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	frequency, err := pennywise.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	start := pennywise.Today()
	if c.start != "" {
		if start, err = pennywise.ParseDate(c.start); err != nil {
			return fail(err)
		}
	}
	var end pennywise.Date
	if c.end != "" {
		if end, err = pennywise.ParseDate(c.end); err != nil {
			return fail(err)
		}
	}

	s := &pennywise.RecurringSchedule{
		Name:          c.name,
		AccountID:     tx.AccountID,
		ToAccountID:   tx.ToAccountID,
		Type:          tx.Type,
		Amount:        tx.Amount,
		CategoryID:    tx.CategoryID,
		SubcategoryID: tx.SubcategoryID,
		Payee:         tx.Payee,
		Frequency:     frequency,
		Interval:      c.interval,
		StartDate:     start,
		NextDue:       start,
		EndDate:       end,
		Active:        true,
	}
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := store.CreateSchedule(s); err != nil {
		return fail(err)
	}
	fmt.Printf("Scheduled %q, first due %s (%s).\n", s.Name, s.NextDue, s.ID)
	return subcommands.ExitSuccess
}

type processCmd struct {
	force bool
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "materialize due recurring transactions" }
func (*processCmd) Usage() string {
	return `pw process [-force]

  Creates a transaction for every occurrence of every active schedule that is
  due on or before today, catching up on missed days. The sweep runs at most
  once per day; -force runs it again.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Run even if a sweep already happened today")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, store, err := openLedger()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	rates, err := loadRates(store)
	if err != nil {
		return fail(err)
	}

	lastProcessed := readLastProcessed()
	if c.force {
		lastProcessed = pennywise.Date{}
	}
	run, err := ledger.ProcessAllDue(lastProcessed, pennywise.Today(), rates)
	if err != nil {
		return fail(err)
	}
	writeLastProcessed(run.LastProcessed)
	printMarkdown(renderer.RecurrenceRunMarkdown(run))
	return subcommands.ExitSuccess
}

// The last sweep date lives next to the database; losing it is harmless
// because a re-run on advanced schedules creates nothing.
func lastProcessedPath() string { return *dbPath + ".lastrun" }

func readLastProcessed() pennywise.Date {
	content, err := os.ReadFile(lastProcessedPath())
	if err != nil {
		return pennywise.Date{}
	}
	d, err := pennywise.ParseDate(strings.TrimSpace(string(content)))
	if err != nil {
		return pennywise.Date{}
	}
	return d
}

func writeLastProcessed(d pennywise.Date) {
	if err := os.WriteFile(lastProcessedPath(), []byte(d.String()+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save sweep date: %v\n", err)
	}
}
