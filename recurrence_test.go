package pennywise

import (
	"testing"
)

func monthlySchedule(id string, start Date) *RecurringSchedule {
	return &RecurringSchedule{
		ID:        id,
		Name:      "Rent",
		AccountID: "checking",
		Type:      Expense,
		Amount:    M(100, "EUR"),
		Frequency: Monthly,
		Interval:  1,
		StartDate: start,
		NextDue:   start,
		Active:    true,
	}
}

func TestProcessDue_CatchesUp(t *testing.T) {
	ledger, store := newTestLedger(t)
	rates := testRates()

	s := monthlySchedule("rent", NewDate(2024, 1, 1))
	if err := store.CreateSchedule(s); err != nil {
		t.Fatal(err)
	}

	res, err := ledger.ProcessDue(s, NewDate(2024, 3, 15), rates)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Created) != 3 {
		t.Fatalf("created %d transactions, want 3", len(res.Created))
	}
	wantDates := []Date{NewDate(2024, 1, 1), NewDate(2024, 2, 1), NewDate(2024, 3, 1)}
	for i, tx := range res.Created {
		if tx.Date != wantDates[i] {
			t.Errorf("occurrence %d on %s, want %s", i, tx.Date, wantDates[i])
		}
		if tx.Memo != "Recurring: Rent" {
			t.Errorf("occurrence memo = %q", tx.Memo)
		}
	}
	if s.NextDue != NewDate(2024, 4, 1) {
		t.Errorf("next due = %s, want 2024-04-01", s.NextDue)
	}
	if got := balance(t, store, "checking"); !got.Equal(M(700, "EUR")) {
		t.Errorf("checking = %s, want 700 EUR after three 100 EUR expenses", got)
	}

	// A second pass on the advanced state creates nothing.
	again, err := ledger.ProcessDue(s, NewDate(2024, 3, 15), rates)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Created) != 0 {
		t.Errorf("second pass created %d transactions, want 0", len(again.Created))
	}
}

func TestProcessDue_NotYetDue(t *testing.T) {
	ledger, store := newTestLedger(t)

	s := monthlySchedule("rent", NewDate(2024, 5, 1))
	if err := store.CreateSchedule(s); err != nil {
		t.Fatal(err)
	}
	res, err := ledger.ProcessDue(s, NewDate(2024, 4, 30), testRates())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Created) != 0 {
		t.Errorf("created %d transactions, want 0", len(res.Created))
	}
	if s.NextDue != NewDate(2024, 5, 1) {
		t.Errorf("next due moved to %s", s.NextDue)
	}
}

func TestProcessDue_EndDateDeactivates(t *testing.T) {
	ledger, store := newTestLedger(t)

	s := monthlySchedule("rent", NewDate(2024, 1, 1))
	s.EndDate = NewDate(2024, 2, 15)
	if err := store.CreateSchedule(s); err != nil {
		t.Fatal(err)
	}

	res, err := ledger.ProcessDue(s, NewDate(2024, 3, 15), testRates())
	if err != nil {
		t.Fatal(err)
	}
	// Jan 1 and Feb 1 fall within the end date; Mar 1 does not and must not
	// be created.
	if len(res.Created) != 2 {
		t.Fatalf("created %d transactions, want 2", len(res.Created))
	}
	if !res.Deactivated || s.Active {
		t.Error("schedule past its end date should be deactivated")
	}
	stored, err := store.Schedule("rent")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Active {
		t.Error("deactivation was not persisted")
	}
}

func TestProcessDue_MonthEndClamps(t *testing.T) {
	ledger, store := newTestLedger(t)

	s := monthlySchedule("rent", NewDate(2025, 1, 31))
	if err := store.CreateSchedule(s); err != nil {
		t.Fatal(err)
	}
	res, err := ledger.ProcessDue(s, NewDate(2025, 3, 31), testRates())
	if err != nil {
		t.Fatal(err)
	}
	wantDates := []Date{NewDate(2025, 1, 31), NewDate(2025, 2, 28), NewDate(2025, 3, 28)}
	if len(res.Created) != len(wantDates) {
		t.Fatalf("created %d transactions, want %d", len(res.Created), len(wantDates))
	}
	for i, tx := range res.Created {
		if tx.Date != wantDates[i] {
			t.Errorf("occurrence %d on %s, want %s", i, tx.Date, wantDates[i])
		}
	}
}

func TestProcessDue_MissingAccountSkipsButAdvances(t *testing.T) {
	ledger, store := newTestLedger(t)

	s := monthlySchedule("rent", NewDate(2024, 1, 1))
	s.AccountID = "gone"
	if err := store.CreateSchedule(s); err != nil {
		t.Fatal(err)
	}
	res, err := ledger.ProcessDue(s, NewDate(2024, 2, 15), testRates())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Created) != 0 {
		t.Errorf("created %d transactions, want 0", len(res.Created))
	}
	if res.Skipped != 2 {
		t.Errorf("skipped %d occurrences, want 2", res.Skipped)
	}
	if s.NextDue != NewDate(2024, 3, 1) {
		t.Errorf("next due = %s, want advanced past the skipped occurrences", s.NextDue)
	}
}

func TestProcessAllDue_OncePerDay(t *testing.T) {
	ledger, store := newTestLedger(t)

	s := monthlySchedule("rent", NewDate(2024, 1, 1))
	if err := store.CreateSchedule(s); err != nil {
		t.Fatal(err)
	}
	today := NewDate(2024, 1, 10)

	run, err := ledger.ProcessAllDue(Date{}, today, testRates())
	if err != nil {
		t.Fatal(err)
	}
	if run.Created() != 1 {
		t.Fatalf("first sweep created %d, want 1", run.Created())
	}
	if run.LastProcessed != today {
		t.Errorf("last processed = %s, want %s", run.LastProcessed, today)
	}

	// Same day again: guarded, even though re-running would be harmless.
	again, err := ledger.ProcessAllDue(run.LastProcessed, today, testRates())
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Results) != 0 {
		t.Errorf("second sweep touched %d schedules, want 0", len(again.Results))
	}
}

func TestFrequencyAdvance(t *testing.T) {
	tests := []struct {
		name     string
		freq     Frequency
		from     Date
		interval int
		want     Date
	}{
		{"daily", Daily, NewDate(2024, 1, 1), 1, NewDate(2024, 1, 2)},
		{"every 10 days", Daily, NewDate(2024, 1, 25), 10, NewDate(2024, 2, 4)},
		{"weekly", Weekly, NewDate(2024, 1, 1), 1, NewDate(2024, 1, 8)},
		{"biweekly", Weekly, NewDate(2024, 1, 1), 2, NewDate(2024, 1, 15)},
		{"monthly", Monthly, NewDate(2024, 1, 15), 1, NewDate(2024, 2, 15)},
		{"monthly clamps to leap feb", Monthly, NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{"monthly clamps to feb", Monthly, NewDate(2025, 1, 31), 1, NewDate(2025, 2, 28)},
		{"quarterly", Monthly, NewDate(2024, 11, 30), 3, NewDate(2025, 2, 28)},
		{"yearly", Yearly, NewDate(2024, 6, 1), 1, NewDate(2025, 6, 1)},
		{"yearly from leap day", Yearly, NewDate(2024, 2, 29), 1, NewDate(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.freq.Advance(tt.from, tt.interval)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("%s.Advance(%s, %d) = %s, want %s", tt.freq, tt.from, tt.interval, got, tt.want)
			}
		})
	}

	if _, err := Frequency("hourly").Advance(NewDate(2024, 1, 1), 1); err == nil {
		t.Error("unknown frequency should fail")
	}
}
