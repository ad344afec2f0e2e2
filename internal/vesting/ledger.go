package vesting

import (
	"fmt"
	"time"

	"rsu-backtest/internal/grant"
	"rsu-backtest/internal/model"
)

// Ledger answers "how much vested on date X" across a set of resolved grants,
// net of each grant's estimated withholding. It only ever sees resolved
// plans; raw vesting specs never reach this layer.
type Ledger struct {
	sched   model.Schedule
	grants  []*grant.Grant
	workEnd *time.Time // no vesting after employment ends
}

func NewLedger(sched model.Schedule, grants []*grant.Grant, workEnd *time.Time) *Ledger {
	return &Ledger{sched: sched, grants: grants, workEnd: workEnd}
}

func (l *Ledger) Grants() []*grant.Grant { return l.grants }

// IsVestDate reports whether d's (month, day) is a configured slot,
// independent of year.
func (l *Ledger) IsVestDate(d time.Time) bool {
	return l.sched.Contains(d)
}

// VestedOn returns the amount vesting on d across all grants, after the
// withholding haircut. With asCash it is the dollar value of a cash award;
// otherwise it is a share count.
func (l *Ledger) VestedOn(d time.Time, asCash bool) float64 {
	if !l.sched.Contains(d) {
		// Nothing vests off-schedule; skip the grant traversal entirely.
		return 0
	}

	total := 0.0
	for _, g := range l.grants {
		for year, fractions := range g.Plan {
			for i, fraction := range fractions {
				vestDate := l.sched.Date(year, i)

				// Slots before the grant date never pay out.
				if vestDate.Before(g.Date) {
					continue
				}
				// Slots past the employment end are dropped without
				// renormalizing the rest of the plan.
				if l.workEnd != nil && vestDate.After(*l.workEnd) {
					continue
				}
				if !vestDate.Equal(d) {
					continue
				}

				if asCash {
					total += fraction * g.VestRate * g.Value
				} else {
					total += fraction * g.VestRate * float64(g.Qty)
				}
			}
		}
	}
	return total
}

// FirstVestDate returns the earliest first-vest date across all grants. The
// analysis window opens shortly before it so price history exists by the
// time the first vest lands.
func (l *Ledger) FirstVestDate() (time.Time, error) {
	if len(l.grants) == 0 {
		return time.Time{}, fmt.Errorf("no grants configured")
	}
	var first time.Time
	for _, g := range l.grants {
		d, err := g.FirstVestDate()
		if err != nil {
			return time.Time{}, err
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	return first, nil
}
