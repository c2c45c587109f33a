package renderer

import (
	"fmt"
	"strings"

	"github.com/ebzl/pennywise"
)

// RecurrenceRunMarkdown renders the outcome of a recurring-schedule sweep.
func RecurrenceRunMarkdown(run *pennywise.RecurrenceRun) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Recurring Transactions\n\n")
	if run.Created() == 0 && len(run.Results) == 0 {
		fmt.Fprintln(&b, "Nothing due.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Schedule | Next Due | Created | Skipped | Status |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|:---|")
	for _, res := range run.Results {
		status := "active"
		if res.Deactivated {
			status = "ended"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s |\n",
			res.Schedule.Name, res.Schedule.NextDue, len(res.Created), res.Skipped, status)
	}
	fmt.Fprintf(&b, "\n%d transactions created.\n", run.Created())

	return b.String()
}
