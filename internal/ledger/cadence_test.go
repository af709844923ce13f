package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		interval Interval
		want     time.Time
	}{
		{"weekly", date(2024, 2, 26), IntervalWeekly, date(2024, 3, 4)},
		{"weekly across year", date(2024, 12, 28), IntervalWeekly, date(2025, 1, 4)},
		{"monthly same day", date(2024, 1, 15), IntervalMonthly, date(2024, 2, 15)},
		{"monthly jan 31 leap year", date(2024, 1, 31), IntervalMonthly, date(2024, 2, 29)},
		{"monthly jan 31 common year", date(2023, 1, 31), IntervalMonthly, date(2023, 2, 28)},
		{"monthly mar 31", date(2024, 3, 31), IntervalMonthly, date(2024, 4, 30)},
		{"monthly december", date(2024, 12, 15), IntervalMonthly, date(2025, 1, 15)},
		{"yearly", date(2023, 6, 10), IntervalYearly, date(2024, 6, 10)},
		{"yearly feb 29", date(2024, 2, 29), IntervalYearly, date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.from, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOccurrence_DropsTimeOfDay(t *testing.T) {
	from := time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC)

	got, err := NextOccurrence(from, IntervalWeekly)

	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 17), got)
}

func TestNextOccurrence_InvalidInterval(t *testing.T) {
	for _, interval := range []Interval{"", IntervalNone, "daily", "biweekly"} {
		t.Run(string(interval), func(t *testing.T) {
			got, err := NextOccurrence(date(2024, 1, 1), interval)
			assert.ErrorIs(t, err, ErrInvalidInterval)
			assert.True(t, got.IsZero(), "never falls back to the input date")
		})
	}
}

func TestNextOccurrence_MonthlyLandsInFollowingMonth(t *testing.T) {
	for d := date(2023, 1, 1); d.Before(date(2025, 1, 1)); d = d.AddDate(0, 0, 1) {
		got, err := NextOccurrence(d, IntervalMonthly)
		require.NoError(t, err)

		wantYear, wantMonth := d.Year(), d.Month()+1
		if wantMonth > time.December {
			wantYear, wantMonth = wantYear+1, time.January
		}
		assert.Equal(t, wantYear, got.Year(), "from %s", d.Format(time.DateOnly))
		assert.Equal(t, wantMonth, got.Month(), "from %s", d.Format(time.DateOnly))
		assert.Equal(t, min(d.Day(), daysIn(wantYear, wantMonth)), got.Day(), "from %s", d.Format(time.DateOnly))
	}
}

func TestAdvance_AnchoredOnOriginalDay(t *testing.T) {
	anchor := date(2024, 1, 31)

	want := []time.Time{date(2024, 2, 29), date(2024, 3, 31), date(2024, 4, 30), date(2024, 5, 31)}
	for i, w := range want {
		got, err := Advance(anchor, IntervalMonthly, i+1)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestInterval_Recurring(t *testing.T) {
	assert.True(t, IntervalWeekly.Recurring())
	assert.True(t, IntervalMonthly.Recurring())
	assert.True(t, IntervalYearly.Recurring())
	assert.False(t, IntervalNone.Recurring())
	assert.False(t, Interval("daily").Recurring())
}
