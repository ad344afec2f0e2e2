package model

import (
	"fmt"
	"time"
)

// VestSlot is one (month, day) pair in the yearly vesting calendar.
type VestSlot struct {
	Month time.Month
	Day   int
}

// Schedule is the ordered yearly vesting calendar. Its length is the number
// of vest opportunities per year; a typical quarterly schedule has four slots.
type Schedule []VestSlot

func (s Schedule) SlotsPerYear() int { return len(s) }

// Date pins slot i to a concrete calendar year. Slot indexes wrap so a flat
// weight sequence can be addressed across year boundaries.
func (s Schedule) Date(year int, i int) time.Time {
	slot := s[i%len(s)]
	return time.Date(year, slot.Month, slot.Day, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether d's (month, day) matches a configured slot,
// independent of year.
func (s Schedule) Contains(d time.Time) bool {
	for _, slot := range s {
		if d.Month() == slot.Month && d.Day() == slot.Day {
			return true
		}
	}
	return false
}

// CountBefore returns how many slots fall strictly before d within d's own
// year. A grant issued after a slot date misses that slot outright.
func (s Schedule) CountBefore(d time.Time) int {
	n := 0
	for i := range s {
		if s.Date(d.Year(), i).Before(d) {
			n++
		}
	}
	return n
}

func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("vest_schedule must have at least one slot")
	}
	prev := VestSlot{}
	for i, slot := range s {
		if slot.Month < time.January || slot.Month > time.December {
			return fmt.Errorf("vest_schedule[%d]: month %d out of range", i, slot.Month)
		}
		// 28 keeps February slots valid in every year.
		maxDay := daysInMonth(slot.Month)
		if slot.Day < 1 || slot.Day > maxDay {
			return fmt.Errorf("vest_schedule[%d]: day %d out of range for %s", i, slot.Day, slot.Month)
		}
		if i > 0 && !less(prev, slot) {
			return fmt.Errorf("vest_schedule must be strictly ascending within the year")
		}
		prev = slot
	}
	return nil
}

func less(a, b VestSlot) bool {
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

func daysInMonth(m time.Month) int {
	switch m {
	case time.February:
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
