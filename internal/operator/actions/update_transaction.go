package actions

import (
	"context"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// UpdateTransaction replaces the caller-editable fields of a transaction and
// moves its balance effect from the old account to the new one.
type UpdateTransaction struct {
	Record ledger.TransactionRecord

	Updated ledger.TransactionRecord
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := findOwnedTransaction(ctx, writer, t.Record.OwnerID, t.Record.ID)
	if err != nil {
		return err
	}

	record := t.Record
	record.RecurrenceOf = existing.RecurrenceOf
	record.NextOccurrence = existing.NextOccurrence
	normalizeRecurrence(&record)
	if err := record.Validate(); err != nil {
		return err
	}

	if err := adjustBalance(ctx, writer, existing.OwnerID, existing.AccountID, balanceEffect(existing).Neg()); err != nil {
		return err
	}
	if err := adjustBalance(ctx, writer, record.OwnerID, record.AccountID, balanceEffect(&record)); err != nil {
		return err
	}

	if err := writer.Transactions.Update(ctx, &record); err != nil {
		return err
	}
	t.Updated = record
	return nil
}
