package pennywise

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Strategy decides the order debts are targeted for extra payments.
type Strategy string

const (
	// Avalanche targets the highest interest rate first.
	Avalanche Strategy = "avalanche"
	// Snowball targets the smallest balance first.
	Snowball Strategy = "snowball"
	// Custom follows the user-assigned priority, lowest number first.
	Custom Strategy = "custom"
)

// ParseStrategy parses a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case Avalanche, Snowball, Custom:
		return st, nil
	default:
		return "", fmt.Errorf("unknown payoff strategy: %q", s)
	}
}

// Debt is one liability line inside a payoff plan, denominated in the base
// currency. It is a snapshot taken from the account when the plan is built,
// not a live reference.
type Debt struct {
	AccountID     string          `json:"account_id"`
	Name          string          `json:"name"`
	Balance       Money           `json:"balance"`
	AnnualRatePct decimal.Decimal `json:"interest_rate"`
	MinPayment    Money           `json:"minimum_payment"`
	Priority      int             `json:"priority,omitempty"` // custom strategy only
}

// DebtFromAccount snapshots a liability account into a plan line.
func DebtFromAccount(a *Account) Debt {
	return Debt{
		AccountID:     a.ID,
		Name:          a.Name,
		Balance:       a.BalanceBase,
		AnnualRatePct: a.InterestRate,
		MinPayment:    a.MinimumPayment,
	}
}

// Order sorts debts into payoff order for the strategy. The slice is sorted
// in place; ties keep their relative order.
func (s Strategy) Order(debts []Debt) {
	switch s {
	case Snowball:
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Balance.LessThan(debts[j].Balance)
		})
	case Custom:
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Priority < debts[j].Priority
		})
	default: // avalanche
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].AnnualRatePct.GreaterThan(debts[j].AnnualRatePct)
		})
	}
}

// PayoffProjection is the outcome of amortizing a set of debts under a fixed
// total monthly payment. When Payable is false the payment does not cover the
// monthly interest and the debt grows forever; all numeric fields are zero.
//
// Values are float64: this is a multi-year projection, not a ledger figure.
type PayoffProjection struct {
	Payable         bool
	Months          int
	InterestPaid    float64
	MonthsMinOnly   int
	InterestMinOnly float64
	InterestSaved   float64
}

// ComputePlan amortizes the debts as a single pool at their arithmetic-mean
// monthly rate, once with minimum payments plus extra and once with minimum
// payments only, and reports the months and interest for each along with the
// interest saved by the extra payment.
func ComputePlan(debts []Debt, extraMonthly float64) PayoffProjection {
	var totalDebt, totalMin, rateSum float64
	for _, d := range debts {
		totalDebt += d.Balance.InexactFloat64()
		totalMin += d.MinPayment.InexactFloat64()
		rateSum += d.AnnualRatePct.InexactFloat64()
	}
	if len(debts) == 0 || totalDebt <= 0 {
		return PayoffProjection{Payable: true}
	}
	monthlyRate := rateSum / float64(len(debts)) / 100 / 12

	months, interest, ok := amortize(totalDebt, monthlyRate, totalMin+extraMonthly)
	if !ok {
		return PayoffProjection{}
	}
	p := PayoffProjection{
		Payable:      true,
		Months:       months,
		InterestPaid: interest,
	}
	if minMonths, minInterest, ok := amortize(totalDebt, monthlyRate, totalMin); ok {
		p.MonthsMinOnly = minMonths
		p.InterestMinOnly = minInterest
		p.InterestSaved = math.Max(0, minInterest-interest)
	}
	return p
}

// amortize returns the whole months to pay off a balance at a fixed monthly
// rate and payment, and the total interest paid. ok is false when the
// payment cannot outrun the interest.
func amortize(balance, monthlyRate, payment float64) (months int, interest float64, ok bool) {
	if payment <= 0 {
		return 0, 0, false
	}
	if monthlyRate <= 0 {
		return int(math.Ceil(balance / payment)), 0, true
	}
	arg := 1 - balance*monthlyRate/payment
	if arg <= 0 {
		return 0, 0, false
	}
	m := math.Ceil(-math.Log(arg) / math.Log(1+monthlyRate))
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return 0, 0, false
	}
	months = int(m)
	interest = payment*float64(months) - balance
	if interest < 0 || math.IsNaN(interest) || math.IsInf(interest, 0) {
		interest = 0
	}
	return months, interest, true
}

// DebtPayoffPlan is a saved payoff plan: a strategy, an extra monthly
// payment, the debt snapshot it was built from, and the projection computed
// from them. The projection fields are denormalized; Recalculate refreshes
// them after the debts or the extra payment change.
type DebtPayoffPlan struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Strategy              Strategy `json:"strategy"`
	ExtraMonthlyPayment   float64  `json:"extra_monthly_payment"`
	Debts                 []Debt   `json:"debts"`
	ProjectedPayoffMonths int      `json:"projected_payoff_months"`
	TotalInterestSaved    float64  `json:"total_interest_saved"`
}

// Recalculate orders the debts per the strategy and refreshes the projection
// fields. It returns the full projection for display.
func (p *DebtPayoffPlan) Recalculate() PayoffProjection {
	p.Strategy.Order(p.Debts)
	proj := ComputePlan(p.Debts, p.ExtraMonthlyPayment)
	p.ProjectedPayoffMonths = proj.Months
	p.TotalInterestSaved = proj.InterestSaved
	return proj
}
