package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Window is an inclusive range of calendar dates. A zero Start or End leaves
// that side open.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	d := CalendarDate(t)
	if !w.Start.IsZero() && d.Before(CalendarDate(w.Start)) {
		return false
	}
	if !w.End.IsZero() && d.After(CalendarDate(w.End)) {
		return false
	}
	return true
}

// Range names the trailing periods offered by the dashboard.
type Range string

const (
	RangeWeekly  Range = "weekly"
	RangeMonthly Range = "monthly"
	RangeYearly  Range = "yearly"
)

var rangeDays = map[Range]int{
	RangeWeekly:  7,
	RangeMonthly: 30,
	RangeYearly:  365,
}

// TrailingWindow returns the window of the last 7, 30 or 365 days ending on asOf.
func TrailingWindow(asOf time.Time, r Range) (Window, error) {
	days, ok := rangeDays[r]
	if !ok {
		return Window{}, fmt.Errorf("unknown range %q", r)
	}
	end := CalendarDate(asOf)
	return Window{Start: end.AddDate(0, 0, -(days - 1)), End: end}, nil
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// KindTotals holds the income and expense totals of a window.
type KindTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DailyTotal holds the totals of one calendar day.
type DailyTotal struct {
	Date         time.Time
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// Summary is the aggregated view of a ledger over a window.
type Summary struct {
	Window           Window
	Count            int
	TotalsByCategory []CategoryTotal
	TotalsByKind     KindTotals
	Net              decimal.Decimal
	DailyBreakdown   []DailyTotal
}

// Summarize aggregates the transactions that fall inside window. Input records
// are expected to be validated already; a negative amount or unknown kind
// still fails rather than being counted.
func Summarize(transactions []TransactionRecord, window Window) (Summary, error) {
	summary := Summary{
		Window:           window,
		TotalsByCategory: []CategoryTotal{},
		DailyBreakdown:   []DailyTotal{},
	}

	categoryIndex := make(map[string]int)
	dayIndex := make(map[time.Time]int)

	for _, tx := range transactions {
		if !window.Contains(tx.OccurredOn) {
			continue
		}
		if tx.Amount.IsNegative() {
			return Summary{}, fmt.Errorf("%w: transaction %s has amount %s", ErrInvalidAmount, tx.ID, tx.Amount)
		}

		day := CalendarDate(tx.OccurredOn)
		i, ok := dayIndex[day]
		if !ok {
			i = len(summary.DailyBreakdown)
			dayIndex[day] = i
			summary.DailyBreakdown = append(summary.DailyBreakdown, DailyTotal{Date: day})
		}

		switch tx.Kind {
		case KindIncome:
			summary.TotalsByKind.Income = summary.TotalsByKind.Income.Add(tx.Amount)
			summary.DailyBreakdown[i].IncomeTotal = summary.DailyBreakdown[i].IncomeTotal.Add(tx.Amount)
		case KindExpense:
			summary.TotalsByKind.Expense = summary.TotalsByKind.Expense.Add(tx.Amount)
			summary.DailyBreakdown[i].ExpenseTotal = summary.DailyBreakdown[i].ExpenseTotal.Add(tx.Amount)

			c, seen := categoryIndex[tx.Category]
			if !seen {
				c = len(summary.TotalsByCategory)
				categoryIndex[tx.Category] = c
				summary.TotalsByCategory = append(summary.TotalsByCategory, CategoryTotal{Category: tx.Category})
			}
			summary.TotalsByCategory[c].Total = summary.TotalsByCategory[c].Total.Add(tx.Amount)
		default:
			return Summary{}, fmt.Errorf("%w: transaction %s has kind %q", ErrInvalidKind, tx.ID, tx.Kind)
		}
		summary.Count++
	}

	slices.SortStableFunc(summary.TotalsByCategory, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})
	slices.SortFunc(summary.DailyBreakdown, func(a, b DailyTotal) int {
		return a.Date.Compare(b.Date)
	})
	summary.Net = summary.TotalsByKind.Income.Sub(summary.TotalsByKind.Expense)

	return summary, nil
}
