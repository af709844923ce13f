package storage

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// TransactionFilter specifies filters for listing transactions. Start and End
// bound OccurredOn inclusively.
type TransactionFilter struct {
	OwnerID       *uuid.UUID
	AccountID     *uuid.UUID
	Start         *time.Time
	End           *time.Time
	RecurringOnly bool
	Limit         int
	Offset        int
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

// ITransactionTable defines the storage operations on transactions.
// List returns up to Limit+1 rows when Limit is set so callers can tell
// whether another page exists.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.TransactionRecord, error)
	Insert(ctx context.Context, tx *ledger.TransactionRecord) (uuid.UUID, error)
	Update(ctx context.Context, tx *ledger.TransactionRecord) error
	SetNextOccurrence(ctx context.Context, id uuid.UUID, next time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *TransactionFilter) ([]*ledger.TransactionRecord, error)
}

// IAccountTable defines the storage operations on accounts.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountRecord, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.AccountRecord, error)
	Insert(ctx context.Context, account *ledger.AccountRecord) (uuid.UUID, error)
	Update(ctx context.Context, account *ledger.AccountRecord) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	ClearDefault(ctx context.Context, ownerID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *AccountFilter) ([]*ledger.AccountRecord, error)
}

// IGoalTable stores at most one retirement goal per owner.
type IGoalTable interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, error)
	Upsert(ctx context.Context, goal *ledger.RetirementGoal) (created bool, err error)
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

type Tables struct {
	Transactions ITransactionTable
	Accounts     IAccountTable
	Goals        IGoalTable
}
