package ledger

import (
	"fmt"
	"time"
)

// Interval is the cadence at which a recurring transaction repeats.
type Interval string

const (
	IntervalNone    Interval = "none"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Recurring reports whether i is one of the intervals a schedule can use.
func (i Interval) Recurring() bool {
	_, ok := cadences[i]
	return ok
}

// cadence moves an anchor date forward by n periods.
type cadence interface {
	advance(anchor time.Time, n int) time.Time
}

type weeklyCadence struct{}

func (weeklyCadence) advance(anchor time.Time, n int) time.Time {
	return anchor.AddDate(0, 0, 7*n)
}

// monthlyCadence keeps the anchor's day of month, clamped to the length of the
// target month (Jan 31 -> Feb 28/29 -> Mar 31).
type monthlyCadence struct {
	months int
}

func (c monthlyCadence) advance(anchor time.Time, n int) time.Time {
	total := int(anchor.Month()) - 1 + c.months*n
	year := anchor.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	day := anchor.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var cadences = map[Interval]cadence{
	IntervalWeekly:  weeklyCadence{},
	IntervalMonthly: monthlyCadence{months: 1},
	IntervalYearly:  monthlyCadence{months: 12},
}

// NextOccurrence returns the date one interval after date.
func NextOccurrence(date time.Time, interval Interval) (time.Time, error) {
	return Advance(date, interval, 1)
}

// Advance returns the n-th occurrence after anchor. Month-based intervals are
// clamped against the anchor's own day of month, so a series anchored on the
// 31st comes back to the 31st after a short month.
func Advance(anchor time.Time, interval Interval, n int) (time.Time, error) {
	c, ok := cadences[interval]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	return c.advance(CalendarDate(anchor), n), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
