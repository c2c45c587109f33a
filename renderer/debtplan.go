package renderer

import (
	"fmt"
	"strings"

	"github.com/ebzl/pennywise"
)

// DebtPlanMarkdown renders a payoff plan and its projection.
func DebtPlanMarkdown(plan *pennywise.DebtPayoffPlan, proj pennywise.PayoffProjection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Debt Payoff Plan: %s\n\n", plan.Name)
	fmt.Fprintf(&b, "Strategy: %s, extra payment: %s/month\n\n",
		plan.Strategy, baseAmount(plan.ExtraMonthlyPayment))

	fmt.Fprint(&b, "## Debts in Payoff Order\n\n")
	fmt.Fprintln(&b, "| # | Debt | Balance | Rate | Min. Payment |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for i, d := range plan.Debts {
		fmt.Fprintf(&b, "| %d | %s | %s | %s%% | %s |\n",
			i+1, d.Name, d.Balance, d.AnnualRatePct, d.MinPayment)
	}

	fmt.Fprint(&b, "\n## Projection\n\n")
	if !proj.Payable {
		fmt.Fprintln(&b, "The monthly payment does not cover the interest; this debt never pays off.")
		fmt.Fprintln(&b, "Increase the extra monthly payment and recalculate.")
		return b.String()
	}

	fmt.Fprintln(&b, "| | With Plan | Minimum Only |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	fmt.Fprintf(&b, "| Months to payoff | %d | %s |\n", proj.Months, orNever(proj.MonthsMinOnly))
	fmt.Fprintf(&b, "| Interest paid | %s | %s |\n",
		baseAmount(proj.InterestPaid), baseAmount(proj.InterestMinOnly))
	fmt.Fprintf(&b, "\n**Interest saved: %s**\n", baseAmount(proj.InterestSaved))

	return b.String()
}

func baseAmount(v float64) pennywise.Money {
	return pennywise.M(v, pennywise.BaseCurrency)
}

func orNever(months int) string {
	if months == 0 {
		return "never"
	}
	return fmt.Sprintf("%d", months)
}
