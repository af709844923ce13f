package ledger

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Occurrences returns the due dates of a recurring transaction as a sequence
// that can be ranged over any number of times.
//
// The series is anchored on OccurredOn. Dates strictly after the later of
// OccurredOn and NextOccurrence are yielded in increasing order; the
// sequence ends before the first date past asOf. The record is not modified.
func Occurrences(tx TransactionRecord, asOf time.Time) (iter.Seq[time.Time], error) {
	if !tx.IsRecurring {
		return func(func(time.Time) bool) {}, nil
	}
	if !tx.RecurrenceInterval.Recurring() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, tx.RecurrenceInterval)
	}

	anchor := CalendarDate(tx.OccurredOn)
	start := anchor
	if !tx.NextOccurrence.IsZero() {
		if next := CalendarDate(tx.NextOccurrence); next.After(start) {
			start = next
		}
	}
	limit := CalendarDate(asOf)
	c := cadences[tx.RecurrenceInterval]

	return func(yield func(time.Time) bool) {
		for n := 1; ; n++ {
			date := c.advance(anchor, n)
			if date.After(limit) {
				return
			}
			if !date.After(start) {
				continue
			}
			if !yield(date) {
				return
			}
		}
	}, nil
}

// DueOccurrences collects Occurrences into a slice.
func DueOccurrences(tx TransactionRecord, asOf time.Time) ([]time.Time, error) {
	seq, err := Occurrences(tx, asOf)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Materialization is what a caller has to persist to bring a recurring
// template up to date.
type Materialization struct {
	Instances      []TransactionRecord
	NextOccurrence time.Time
}

// Materialize builds one concrete, non-recurring copy of template per due
// date. IDs are left for storage to assign. An empty due list yields a
// Materialization whose NextOccurrence is the template's current one.
func Materialize(template TransactionRecord, due []time.Time) Materialization {
	m := Materialization{NextOccurrence: template.NextOccurrence}
	if len(due) == 0 {
		return m
	}

	templateID := template.ID
	m.Instances = make([]TransactionRecord, len(due))
	for i, date := range due {
		instance := template
		instance.ID = uuid.Nil
		instance.OccurredOn = date
		instance.IsRecurring = false
		instance.RecurrenceInterval = IntervalNone
		instance.NextOccurrence = time.Time{}
		instance.RecurrenceOf = &templateID
		if template.AccountID != nil {
			accountID := *template.AccountID
			instance.AccountID = &accountID
		}
		m.Instances[i] = instance
	}
	m.NextOccurrence = due[len(due)-1]
	return m
}
