package pennywise

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func pct(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestComputePlan_SingleDebt(t *testing.T) {
	// 5000 at 20%/yr with a 150 minimum: 50 months and 2500 of interest.
	// Adding 100/month cuts it to 25 months and 1250.
	debts := []Debt{{Name: "Visa", Balance: M(5000, "EUR"), AnnualRatePct: pct(20), MinPayment: M(150, "EUR")}}

	proj := ComputePlan(debts, 100)
	if !proj.Payable {
		t.Fatal("plan should be payable")
	}
	if proj.Months != 25 {
		t.Errorf("months = %d, want 25", proj.Months)
	}
	if math.Abs(proj.InterestPaid-1250) > 1 {
		t.Errorf("interest = %.2f, want about 1250", proj.InterestPaid)
	}
	if proj.MonthsMinOnly != 50 {
		t.Errorf("min-only months = %d, want 50", proj.MonthsMinOnly)
	}
	if math.Abs(proj.InterestMinOnly-2500) > 1 {
		t.Errorf("min-only interest = %.2f, want about 2500", proj.InterestMinOnly)
	}
	if math.Abs(proj.InterestSaved-1250) > 2 {
		t.Errorf("interest saved = %.2f, want about 1250", proj.InterestSaved)
	}
}

func TestComputePlan_MeanRatePools(t *testing.T) {
	// 1000 at 10% and 3000 at 20% pool to 4000 at the 15% mean rate.
	debts := []Debt{
		{Name: "Car", Balance: M(1000, "EUR"), AnnualRatePct: pct(10), MinPayment: M(50, "EUR")},
		{Name: "Visa", Balance: M(3000, "EUR"), AnnualRatePct: pct(20), MinPayment: M(50, "EUR")},
	}
	proj := ComputePlan(debts, 0)
	if !proj.Payable {
		t.Fatal("plan should be payable")
	}
	if proj.Months != 56 {
		t.Errorf("months = %d, want 56", proj.Months)
	}
	if math.Abs(proj.InterestPaid-1600) > 1 {
		t.Errorf("interest = %.2f, want about 1600", proj.InterestPaid)
	}
}

func TestComputePlan_ZeroRate(t *testing.T) {
	debts := []Debt{{Name: "Family loan", Balance: M(1200, "EUR"), MinPayment: M(100, "EUR")}}
	proj := ComputePlan(debts, 0)
	if !proj.Payable || proj.Months != 12 || proj.InterestPaid != 0 {
		t.Errorf("got %+v, want 12 interest-free months", proj)
	}
}

func TestComputePlan_NotPayable(t *testing.T) {
	// 83.33/month of interest against an 80 payment: the balance only grows.
	debts := []Debt{{Name: "Visa", Balance: M(5000, "EUR"), AnnualRatePct: pct(20), MinPayment: M(80, "EUR")}}
	proj := ComputePlan(debts, 0)
	if proj.Payable {
		t.Fatal("plan should not be payable")
	}
	if proj.Months != 0 || proj.InterestPaid != 0 || proj.InterestSaved != 0 {
		t.Errorf("not-payable projection should be all zero, got %+v", proj)
	}

	// The same debts become payable with enough extra.
	if with := ComputePlan(debts, 100); !with.Payable {
		t.Error("extra payment should make the plan payable")
	}
}

func TestComputePlan_NoDebts(t *testing.T) {
	proj := ComputePlan(nil, 100)
	if !proj.Payable || proj.Months != 0 {
		t.Errorf("empty plan should be trivially payable, got %+v", proj)
	}
}

func TestComputePlan_MoreExtraNeverSlower(t *testing.T) {
	debts := []Debt{
		{Name: "a", Balance: M(4000, "EUR"), AnnualRatePct: pct(18), MinPayment: M(120, "EUR")},
		{Name: "b", Balance: M(2500, "EUR"), AnnualRatePct: pct(6), MinPayment: M(60, "EUR")},
	}
	prev := ComputePlan(debts, 0)
	for extra := 50.0; extra <= 500; extra += 50 {
		cur := ComputePlan(debts, extra)
		if !cur.Payable {
			t.Fatalf("extra %.0f should stay payable", extra)
		}
		if cur.Months > prev.Months {
			t.Errorf("extra %.0f takes %d months, more than %d with less", extra, cur.Months, prev.Months)
		}
		prev = cur
	}
}

func TestStrategyOrder(t *testing.T) {
	debts := func() []Debt {
		return []Debt{
			{Name: "Car", Balance: M(7000, "EUR"), AnnualRatePct: pct(6), Priority: 1},
			{Name: "Visa", Balance: M(300, "EUR"), AnnualRatePct: pct(20), Priority: 3},
			{Name: "Store card", Balance: M(500, "EUR"), AnnualRatePct: pct(25), Priority: 2},
		}
	}
	tests := []struct {
		strategy Strategy
		want     []string
	}{
		{Avalanche, []string{"Store card", "Visa", "Car"}},
		{Snowball, []string{"Visa", "Store card", "Car"}},
		{Custom, []string{"Car", "Store card", "Visa"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			d := debts()
			tt.strategy.Order(d)
			for i, name := range tt.want {
				if d[i].Name != name {
					t.Errorf("position %d = %s, want %s", i, d[i].Name, name)
				}
			}
		})
	}
}

func TestPlanRecalculate(t *testing.T) {
	plan := &DebtPayoffPlan{
		Name:                "Kill the cards",
		Strategy:            Snowball,
		ExtraMonthlyPayment: 100,
		Debts: []Debt{
			{Name: "Visa", Balance: M(5000, "EUR"), AnnualRatePct: pct(20), MinPayment: M(150, "EUR")},
		},
	}
	proj := plan.Recalculate()
	if plan.ProjectedPayoffMonths != proj.Months || plan.ProjectedPayoffMonths != 25 {
		t.Errorf("projected months = %d, want 25", plan.ProjectedPayoffMonths)
	}
	if math.Abs(plan.TotalInterestSaved-proj.InterestSaved) > 0.001 {
		t.Errorf("plan saved %.2f, projection says %.2f", plan.TotalInterestSaved, proj.InterestSaved)
	}
}
