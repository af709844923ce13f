package sqlconfig

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

const uniqueViolation = "23505"

var transactionColumns = []string{
	"id", "owner_id", "account_id", "amount", "category", "kind", "payment_method",
	"occurred_on", "is_recurring", "recurrence_interval", "next_occurrence", "notes", "recurrence_of",
}

type transactionRow struct {
	ID                 uuid.UUID       `db:"id"`
	OwnerID            uuid.UUID       `db:"owner_id"`
	AccountID          uuid.NullUUID   `db:"account_id"`
	Amount             decimal.Decimal `db:"amount"`
	Category           string          `db:"category"`
	Kind               string          `db:"kind"`
	PaymentMethod      string          `db:"payment_method"`
	OccurredOn         time.Time       `db:"occurred_on"`
	IsRecurring        bool            `db:"is_recurring"`
	RecurrenceInterval string          `db:"recurrence_interval"`
	NextOccurrence     sql.NullTime    `db:"next_occurrence"`
	Notes              string          `db:"notes"`
	RecurrenceOf       uuid.NullUUID   `db:"recurrence_of"`
}

func (r transactionRow) record() *ledger.TransactionRecord {
	tx := &ledger.TransactionRecord{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		AccountID:          fromNullUUID(r.AccountID),
		Amount:             r.Amount,
		Category:           r.Category,
		Kind:               ledger.Kind(r.Kind),
		PaymentMethod:      ledger.PaymentMethod(r.PaymentMethod),
		OccurredOn:         ledger.CalendarDate(r.OccurredOn),
		IsRecurring:        r.IsRecurring,
		RecurrenceInterval: ledger.Interval(r.RecurrenceInterval),
		Notes:              r.Notes,
		RecurrenceOf:       fromNullUUID(r.RecurrenceOf),
	}
	if r.NextOccurrence.Valid {
		tx.NextOccurrence = ledger.CalendarDate(r.NextOccurrence.Time)
	}
	return tx
}

// transactionValues returns the column values of tx in transactionColumns order.
func transactionValues(tx *ledger.TransactionRecord) []any {
	return []any{
		tx.ID,
		tx.OwnerID,
		toNullUUID(tx.AccountID),
		tx.Amount,
		tx.Category,
		string(tx.Kind),
		string(tx.PaymentMethod),
		ledger.CalendarDate(tx.OccurredOn),
		tx.IsRecurring,
		string(tx.RecurrenceInterval),
		toNullTime(tx.NextOccurrence),
		tx.Notes,
		toNullUUID(tx.RecurrenceOf),
	}
}

var accountColumns = []string{"id", "owner_id", "name", "kind", "balance", "is_default"}

type accountRow struct {
	ID        uuid.UUID       `db:"id"`
	OwnerID   uuid.UUID       `db:"owner_id"`
	Name      string          `db:"name"`
	Kind      string          `db:"kind"`
	Balance   decimal.Decimal `db:"balance"`
	IsDefault bool            `db:"is_default"`
}

func (r accountRow) record() *ledger.AccountRecord {
	return &ledger.AccountRecord{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		Kind:      ledger.AccountKind(r.Kind),
		Balance:   r.Balance,
		IsDefault: r.IsDefault,
	}
}

var goalColumns = []string{
	"owner_id", "current_age", "retirement_age", "current_savings", "monthly_contribution",
	"expected_annual_return_pct", "inflation_rate_pct", "desired_monthly_income", "life_expectancy",
}

type goalRow struct {
	OwnerID                 uuid.UUID       `db:"owner_id"`
	CurrentAge              int             `db:"current_age"`
	RetirementAge           int             `db:"retirement_age"`
	CurrentSavings          decimal.Decimal `db:"current_savings"`
	MonthlyContribution     decimal.Decimal `db:"monthly_contribution"`
	ExpectedAnnualReturnPct decimal.Decimal `db:"expected_annual_return_pct"`
	InflationRatePct        decimal.Decimal `db:"inflation_rate_pct"`
	DesiredMonthlyIncome    decimal.Decimal `db:"desired_monthly_income"`
	LifeExpectancy          int             `db:"life_expectancy"`
}

func (r goalRow) record() *ledger.RetirementGoal {
	return &ledger.RetirementGoal{
		OwnerID:                 r.OwnerID,
		CurrentAge:              r.CurrentAge,
		RetirementAge:           r.RetirementAge,
		CurrentSavings:          r.CurrentSavings,
		MonthlyContribution:     r.MonthlyContribution,
		ExpectedAnnualReturnPct: r.ExpectedAnnualReturnPct,
		InflationRatePct:        r.InflationRatePct,
		DesiredMonthlyIncome:    r.DesiredMonthlyIncome,
		LifeExpectancy:          r.LifeExpectancy,
	}
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: ledger.CalendarDate(t), Valid: true}
}

// translate maps driver errors onto the storage sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", storage.ErrConflict, pqErr.Constraint)
	}
	return err
}

func expectOne(res sql.Result, err error) error {
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
