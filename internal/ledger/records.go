// Package ledger holds the personal-finance domain: transaction and account
// records, recurrence schedules, ledger summaries and retirement projections.
// Nothing in it performs I/O.
package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Kind says whether a transaction adds to or takes from the owner's money.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// PaymentMethod is the closed set of ways a transaction can be paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentGPay       PaymentMethod = "GPay"
	PaymentPhonePe    PaymentMethod = "PhonePe"
	PaymentCreditCard PaymentMethod = "CreditCard"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentGPay, PaymentPhonePe, PaymentCreditCard:
		return true
	}
	return false
}

// AccountKind distinguishes savings from current accounts.
type AccountKind string

const (
	AccountSavings AccountKind = "Savings"
	AccountCurrent AccountKind = "Current"
)

// Valid reports whether k is one of the known account kinds.
func (k AccountKind) Valid() bool {
	return k == AccountSavings || k == AccountCurrent
}

const maxNotesLength = 500

// moneyScale is the number of decimal places money is stored with.
const moneyScale = 2

// exactCents reports whether d has no digits below a cent.
func exactCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(moneyScale))
}

// TransactionRecord is a single income or expense entry of a ledger.
// A zero NextOccurrence means none has been recorded yet.
type TransactionRecord struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	AccountID          *uuid.UUID
	Amount             decimal.Decimal
	Category           string
	Kind               Kind
	PaymentMethod      PaymentMethod
	OccurredOn         time.Time
	IsRecurring        bool
	RecurrenceInterval Interval
	NextOccurrence     time.Time
	Notes              string
	RecurrenceOf       *uuid.UUID
}

// Validate checks a record at ingestion, before it reaches storage or aggregation.
func (t TransactionRecord) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, t.Amount)
	}
	if !exactCents(t.Amount) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, t.Amount, moneyScale)
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if !t.PaymentMethod.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, t.PaymentMethod)
	}
	if t.OccurredOn.IsZero() {
		return ErrMissingDate
	}
	if t.IsRecurring && !t.RecurrenceInterval.Recurring() {
		return fmt.Errorf("%w: %q", ErrInvalidInterval, t.RecurrenceInterval)
	}
	if utf8.RuneCountInString(t.Notes) > maxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// AccountRecord is a bank account owned by a user.
type AccountRecord struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Kind      AccountKind
	Balance   decimal.Decimal
	IsDefault bool
}

// Validate checks the account fields a caller may set.
func (a AccountRecord) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyAccountName
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountKind, a.Kind)
	}
	if !exactCents(a.Balance) {
		return fmt.Errorf("%w: balance %s has more than %d decimal places", ErrInvalidAmount, a.Balance, moneyScale)
	}
	return nil
}

// CheckSingleDefault fails when more than one account of the same owner is
// marked as default.
func CheckSingleDefault(accounts []AccountRecord) error {
	seen := make(map[uuid.UUID]uuid.UUID)
	for _, a := range accounts {
		if !a.IsDefault {
			continue
		}
		if other, ok := seen[a.OwnerID]; ok {
			return fmt.Errorf("%w: owner %s has %s and %s", ErrMultipleDefaults, a.OwnerID, other, a.ID)
		}
		seen[a.OwnerID] = a.ID
	}
	return nil
}

// CalendarDate drops the clock part of t, keeping its year, month and day in UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
