package ledger

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(kind Kind, category, amount string, on time.Time) TransactionRecord {
	return TransactionRecord{
		ID:            uuid.Must(uuid.NewV4()),
		Amount:        decimal.RequireFromString(amount),
		Category:      category,
		Kind:          kind,
		PaymentMethod: PaymentCash,
		OccurredOn:    on,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]any{"want %s, got %s", want, got}, msgAndArgs...)...)
}

var march = Window{Start: date(2024, 3, 1), End: date(2024, 3, 31)}

func TestSummarize_GroceriesScenario(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "Groceries", "100", date(2024, 3, 5)),
		entry(KindExpense, "Groceries", "50", date(2024, 3, 6)),
		entry(KindIncome, "Salary", "500", date(2024, 3, 1)),
	}

	s, err := Summarize(txs, march)

	require.NoError(t, err)
	require.Len(t, s.TotalsByCategory, 1)
	assert.Equal(t, "Groceries", s.TotalsByCategory[0].Category)
	assertDecimal(t, "150", s.TotalsByCategory[0].Total)
	assertDecimal(t, "500", s.TotalsByKind.Income)
	assertDecimal(t, "150", s.TotalsByKind.Expense)
	assertDecimal(t, "350", s.Net)
	assert.Equal(t, 3, s.Count)
}

func TestSummarize_CategoryOrder(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "Food", "100", date(2024, 3, 2)),
		entry(KindExpense, "Rent", "500", date(2024, 3, 1)),
		entry(KindExpense, "Fun", "60", date(2024, 3, 3)),
		entry(KindExpense, "Fun", "40", date(2024, 3, 4)),
		entry(KindExpense, "Travel", "300", date(2024, 3, 5)),
		entry(KindIncome, "Bonus", "9999", date(2024, 3, 5)),
	}

	s, err := Summarize(txs, march)

	require.NoError(t, err)
	var order []string
	for _, c := range s.TotalsByCategory {
		order = append(order, c.Category)
	}
	assert.Equal(t, []string{"Rent", "Travel", "Food", "Fun"}, order, "ties keep first-seen order, income excluded")
}

func TestSummarize_DailyBreakdown(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "Food", "20", time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)),
		entry(KindIncome, "Salary", "1000", date(2024, 3, 1)),
		entry(KindExpense, "Food", "5.5", time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)),
		entry(KindIncome, "Refund", "12", date(2024, 3, 10)),
	}

	s, err := Summarize(txs, march)

	require.NoError(t, err)
	require.Len(t, s.DailyBreakdown, 2)
	assert.Equal(t, date(2024, 3, 1), s.DailyBreakdown[0].Date)
	assertDecimal(t, "1000", s.DailyBreakdown[0].IncomeTotal)
	assertDecimal(t, "0", s.DailyBreakdown[0].ExpenseTotal)
	assert.Equal(t, date(2024, 3, 10), s.DailyBreakdown[1].Date)
	assertDecimal(t, "12", s.DailyBreakdown[1].IncomeTotal)
	assertDecimal(t, "25.5", s.DailyBreakdown[1].ExpenseTotal)
}

func TestSummarize_WindowIsInclusive(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "A", "1", time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)),
		entry(KindExpense, "B", "2", date(2024, 3, 1)),
		entry(KindExpense, "C", "4", time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)),
		entry(KindExpense, "D", "8", date(2024, 4, 1)),
	}

	s, err := Summarize(txs, march)

	require.NoError(t, err)
	assertDecimal(t, "6", s.TotalsByKind.Expense)
	assert.Equal(t, 2, s.Count)
}

func TestSummarize_OpenWindow(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "A", "1", date(1999, 1, 1)),
		entry(KindExpense, "B", "2", date(2099, 1, 1)),
	}

	s, err := Summarize(txs, Window{})

	require.NoError(t, err)
	assertDecimal(t, "3", s.TotalsByKind.Expense)
}

func TestSummarize_Empty(t *testing.T) {
	for name, tc := range map[string]struct {
		txs    []TransactionRecord
		window Window
	}{
		"no transactions": {nil, march},
		"inverted window": {[]TransactionRecord{entry(KindIncome, "X", "10", date(2024, 3, 5))}, Window{Start: march.End, End: march.Start}},
		"nothing inside":  {[]TransactionRecord{entry(KindIncome, "X", "10", date(2024, 5, 5))}, march},
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Summarize(tc.txs, tc.window)

			require.NoError(t, err)
			assert.Equal(t, 0, s.Count)
			assert.Empty(t, s.TotalsByCategory)
			assert.NotNil(t, s.TotalsByCategory)
			assert.Empty(t, s.DailyBreakdown)
			assert.True(t, s.TotalsByKind.Income.IsZero())
			assert.True(t, s.TotalsByKind.Expense.IsZero())
			assert.True(t, s.Net.IsZero())
		})
	}
}

func TestSummarize_NegativeAmount(t *testing.T) {
	txs := []TransactionRecord{entry(KindExpense, "A", "-1", date(2024, 3, 5))}

	_, err := Summarize(txs, march)

	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSummarize_UnknownKind(t *testing.T) {
	txs := []TransactionRecord{entry(Kind("Transfer"), "A", "1", date(2024, 3, 5))}

	_, err := Summarize(txs, march)

	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestSummarize_ExactDecimal(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "A", "0.1", date(2024, 3, 5)),
		entry(KindExpense, "A", "0.2", date(2024, 3, 5)),
	}

	s, err := Summarize(txs, march)

	require.NoError(t, err)
	assertDecimal(t, "0.3", s.TotalsByKind.Expense)
}

func TestSummarize_Idempotent(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "Food", "12.34", date(2024, 3, 9)),
		entry(KindIncome, "Salary", "1000", date(2024, 3, 1)),
		entry(KindExpense, "Rent", "700", date(2024, 3, 1)),
	}
	snapshot := make([]TransactionRecord, len(txs))
	copy(snapshot, txs)

	first, err := Summarize(txs, march)
	require.NoError(t, err)
	second, err := Summarize(txs, march)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, txs)
}

func TestSummarize_KindTotalsCoverEveryAmount(t *testing.T) {
	txs := []TransactionRecord{
		entry(KindExpense, "Food", "12.34", date(2024, 3, 9)),
		entry(KindIncome, "Salary", "1000.01", date(2024, 3, 1)),
		entry(KindExpense, "Rent", "700", date(2024, 3, 1)),
		entry(KindIncome, "Gift", "0.99", date(2024, 3, 31)),
	}

	s, err := Summarize(txs, march)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	assert.True(t, sum.Equal(s.TotalsByKind.Income.Add(s.TotalsByKind.Expense)))
}

func TestTrailingWindow(t *testing.T) {
	asOf := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	w, err := TrailingWindow(asOf, RangeWeekly)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 4), w.Start)
	assert.Equal(t, date(2024, 3, 10), w.End)

	w, err = TrailingWindow(asOf, RangeMonthly)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 10), w.Start)

	_, err = TrailingWindow(asOf, Range("daily"))
	assert.Error(t, err)
}
