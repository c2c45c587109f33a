package pennywise

import (
	"errors"
	"fmt"
)

// RecurrenceResult reports what one ProcessDue pass did to a schedule.
type RecurrenceResult struct {
	Schedule    *RecurringSchedule // state after the pass
	Created     []*Transaction
	Skipped     int // due occurrences dropped because an account was missing
	Deactivated bool
}

// ProcessDue materializes every occurrence of s that is due on or before
// today, advancing NextDue past each one. A schedule whose end date falls
// before the next occurrence is deactivated without creating that occurrence.
//
// Occurrences referencing a missing account are skipped, but the cursor still
// advances, so a later pass does not retry them. Running ProcessDue again on
// the advanced state is a no-op.
func (l *Ledger) ProcessDue(s *RecurringSchedule, today Date, rates Rates) (*RecurrenceResult, error) {
	res := &RecurrenceResult{Schedule: s}
	if !s.Active {
		return res, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	u, err := l.begin()
	if err != nil {
		return nil, err
	}

	cursor := s.NextDue
	for !cursor.After(today) {
		if !s.EndDate.IsZero() && cursor.After(s.EndDate) {
			s.Active = false
			res.Deactivated = true
			break
		}

		tx := s.materialize(cursor, rates)
		switch err := u.applyTx(tx, Apply, rates); {
		case errors.Is(err, ErrAccountNotFound):
			res.Skipped++
			l.log.Warn().Str("schedule", s.ID).Str("due", cursor.String()).
				Err(err).Msg("skipping occurrence")
		case err != nil:
			return nil, err
		default:
			if err := l.store.CreateTransaction(tx); err != nil {
				return nil, fmt.Errorf("could not create occurrence: %w", err)
			}
			res.Created = append(res.Created, tx)
		}

		next, err := s.Frequency.Advance(cursor, s.Interval)
		if err != nil {
			return nil, err
		}
		cursor = next
	}

	s.NextDue = cursor
	if err := u.flush(); err != nil {
		return nil, err
	}
	if err := l.store.UpdateSchedule(s); err != nil {
		return nil, fmt.Errorf("could not update schedule: %w", err)
	}
	if n := len(res.Created); n > 0 || res.Deactivated {
		l.log.Info().Str("schedule", s.ID).Int("created", n).
			Bool("deactivated", res.Deactivated).Msg("processed schedule")
	}
	return res, nil
}

// RecurrenceRun is the outcome of one ProcessAllDue sweep.
type RecurrenceRun struct {
	Results       []*RecurrenceResult
	LastProcessed Date // date the caller should persist for the next sweep
}

// Created counts transactions materialized across the whole run.
func (r *RecurrenceRun) Created() int {
	var n int
	for _, res := range r.Results {
		n += len(res.Created)
	}
	return n
}

// ProcessAllDue runs ProcessDue over every active schedule. The caller keeps
// the last-processed date between runs; when it is today or later the sweep
// already happened and this returns an empty run. A schedule that fails does
// not stop the sweep; the failure is logged and the rest proceed.
func (l *Ledger) ProcessAllDue(lastProcessed, today Date, rates Rates) (*RecurrenceRun, error) {
	run := &RecurrenceRun{LastProcessed: today}
	if !lastProcessed.IsZero() && !lastProcessed.Before(today) {
		return run, nil
	}

	schedules, err := l.store.Schedules()
	if err != nil {
		return nil, fmt.Errorf("could not load schedules: %w", err)
	}
	for _, s := range schedules {
		if !s.Active {
			continue
		}
		res, err := l.ProcessDue(s, today, rates)
		if err != nil {
			l.log.Error().Str("schedule", s.ID).Err(err).Msg("schedule failed")
			continue
		}
		run.Results = append(run.Results, res)
	}
	return run, nil
}
