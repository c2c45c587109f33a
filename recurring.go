package pennywise

import (
	"fmt"
	"time"
)

// Frequency is the unit a recurring schedule advances by.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// ParseFrequency parses a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case Daily, Weekly, Monthly, Yearly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// Advance returns the occurrence date interval units of f after d.
//
// Calendar policy: monthly and yearly advancement clamps to the last valid
// day of the target month, so a schedule anchored on Jan 31 fires on Feb 28
// (or 29), then Mar 28 when advanced from there. This matches the original
// tracker's arithmetic and never skips a month.
func (f Frequency) Advance(d Date, interval int) (Date, error) {
	if interval < 1 {
		interval = 1
	}
	switch f {
	case Daily:
		return d.Add(interval), nil
	case Weekly:
		return d.Add(7 * interval), nil
	case Monthly:
		return addMonthsClamped(d, interval), nil
	case Yearly:
		return addMonthsClamped(d, 12*interval), nil
	default:
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, f)
	}
}

func addMonthsClamped(d Date, months int) Date {
	first := NewDate(d.Year(), d.Month()+time.Month(months), 1)
	day := d.Day()
	if last := first.DaysInMonth(); day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

// RecurringSchedule is a template transaction plus a cadence. While active,
// NextDue is always the next not-yet-materialized occurrence date.
type RecurringSchedule struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	AccountID     string    `json:"account_id"`
	ToAccountID   string    `json:"to_account_id,omitempty"`
	Type          TxType    `json:"type"`
	Amount        Money     `json:"amount"`
	CategoryID    string    `json:"category_id,omitempty"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	Payee         string    `json:"payee,omitempty"`
	Frequency     Frequency `json:"frequency"`
	Interval      int       `json:"interval"` // every N frequency units, min 1
	StartDate     Date      `json:"start_date"`
	NextDue       Date      `json:"next_due_date"`
	EndDate       Date      `json:"end_date,omitempty"` // zero means no end
	Active        bool      `json:"is_active"`
}

// Validate checks a schedule for structural correctness.
func (s *RecurringSchedule) Validate() error {
	if _, err := ParseTxType(string(s.Type)); err != nil {
		return err
	}
	if _, err := ParseFrequency(string(s.Frequency)); err != nil {
		return err
	}
	if s.AccountID == "" {
		return fmt.Errorf("schedule account is missing")
	}
	if s.Interval < 1 {
		return fmt.Errorf("schedule interval must be at least 1, got %d", s.Interval)
	}
	if s.NextDue.IsZero() {
		return fmt.Errorf("schedule next due date is missing")
	}
	return nil
}

// materialize builds the concrete transaction for one occurrence of the
// schedule on the given date.
func (s *RecurringSchedule) materialize(on Date, rates Rates) *Transaction {
	tx := &Transaction{
		Date:          on,
		AccountID:     s.AccountID,
		ToAccountID:   s.ToAccountID,
		Type:          s.Type,
		Amount:        s.Amount,
		CategoryID:    s.CategoryID,
		SubcategoryID: s.SubcategoryID,
		Payee:         s.Payee,
		Memo:          "Recurring: " + s.Name,
	}
	tx.capture(rates)
	return tx
}
