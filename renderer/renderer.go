// Package renderer turns ledger reports into markdown. Rendering is kept
// separate from computation: the engine produces report values, this package
// only formats them.
package renderer

import (
	"fmt"
	"strings"

	"github.com/ebzl/pennywise"
)

// NetWorthMarkdown renders the account list with per-account balances and
// the liability-aware net worth total.
func NetWorthMarkdown(accounts []*pennywise.Account, total pennywise.Money) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Net Worth\n\n")
	fmt.Fprintln(&b, "| Account | Type | Balance | In Base |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, a := range accounts {
		name := a.Name
		if !a.Active {
			name += " (closed)"
		}
		base := a.BalanceBase
		if a.Type.IsLiability() {
			base = base.Neg()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			name, a.Type, a.Balance, base.SignedString())
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** |\n", total.SignedString())

	return b.String()
}

// TransactionsMarkdown renders a transaction listing with period totals.
func TransactionsMarkdown(txs []*pennywise.Transaction, names map[string]string) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Type | Account | Amount | Payee | Memo |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|:---|")
	for _, t := range txs {
		account := names[t.AccountID]
		if t.Type == pennywise.Transfer {
			account += " → " + names[t.ToAccountID]
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Date, t.Type, account, t.Amount, t.Payee, t.Memo)
	}

	totals := pennywise.SumTotals(txs)
	fmt.Fprint(&b, "\n## Totals\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Income | %s |\n", totals.Income)
	fmt.Fprintf(&b, "| Expenses | %s |\n", totals.Expenses)
	fmt.Fprintf(&b, "| **Net** | **%s** |\n", totals.Net.SignedString())

	return b.String()
}
