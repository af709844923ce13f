package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// CreateTransaction stores a new transaction and books it against its
// account, if it names one.
type CreateTransaction struct {
	Record ledger.TransactionRecord

	CreatedID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	record := t.Record
	record.ID = uuid.Nil
	record.RecurrenceOf = nil
	normalizeRecurrence(&record)
	if err := record.Validate(); err != nil {
		return err
	}

	if err := adjustBalance(ctx, writer, record.OwnerID, record.AccountID, balanceEffect(&record)); err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, &record)
	if err != nil {
		return err
	}
	t.CreatedID = id
	return nil
}
