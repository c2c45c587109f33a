package renderer

import (
	"fmt"
	"strings"

	"github.com/ebzl/pennywise"
)

// ReconciliationMarkdown renders a reconciliation session summary.
func ReconciliationMarkdown(account *pennywise.Account, sum *pennywise.ReconciliationSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Reconciliation: %s\n\n", account.Name)
	if !account.LastReconciledDate.IsZero() {
		fmt.Fprintf(&b, "Last reconciled %s at %s.\n\n",
			account.LastReconciledDate, account.LastReconciledBalance)
	}

	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Beginning balance | %s |\n", sum.BeginningBalance)
	fmt.Fprintf(&b, "| Cleared balance (%d entries) | %s |\n", sum.Cleared, sum.ClearedBalance)
	fmt.Fprintf(&b, "| Statement balance | %s |\n", sum.StatementBalance)
	fmt.Fprintf(&b, "| **Difference** | **%s** |\n", sum.Difference.SignedString())

	fmt.Fprintln(&b)
	if sum.Difference.IsZero() {
		fmt.Fprintln(&b, "Balanced. Finish to lock the cleared entries.")
	} else {
		fmt.Fprintf(&b, "Off by %s with %d entries still uncleared.\n",
			sum.Difference.SignedString(), sum.Outstanding)
	}

	return b.String()
}
