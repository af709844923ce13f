package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// IAction is a unit of work the operator runs inside one storage transaction.
// Result fields an action exposes are safe to read once Process returns.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// findOwnedTransaction reports rows of another owner as not found.
func findOwnedTransaction(ctx context.Context, writer *storage.Writer, ownerID, id uuid.UUID) (*ledger.TransactionRecord, error) {
	tx, err := writer.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", id, err)
	}
	if tx.OwnerID != ownerID {
		return nil, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	return tx, nil
}

func findOwnedAccount(ctx context.Context, writer *storage.Writer, ownerID, id uuid.UUID) (*ledger.AccountRecord, error) {
	account, err := writer.Accounts.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", id, err)
	}
	if account.OwnerID != ownerID {
		return nil, fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
	}
	return account, nil
}

// balanceEffect is what tx adds to its account: income credits, expense debits.
func balanceEffect(tx *ledger.TransactionRecord) decimal.Decimal {
	if tx.Kind == ledger.KindIncome {
		return tx.Amount
	}
	return tx.Amount.Neg()
}

func adjustBalance(ctx context.Context, writer *storage.Writer, ownerID uuid.UUID, accountID *uuid.UUID, delta decimal.Decimal) error {
	if accountID == nil {
		return nil
	}
	account, err := findOwnedAccount(ctx, writer, ownerID, *accountID)
	if err != nil {
		return err
	}
	if delta.IsZero() {
		return nil
	}
	return writer.Accounts.UpdateBalance(ctx, account.ID, account.Balance.Add(delta))
}

// normalizeRecurrence clears the schedule fields of a one-off transaction.
func normalizeRecurrence(tx *ledger.TransactionRecord) {
	if !tx.IsRecurring {
		tx.RecurrenceInterval = ledger.IntervalNone
		tx.NextOccurrence = time.Time{}
	}
	tx.OccurredOn = ledger.CalendarDate(tx.OccurredOn)
}
