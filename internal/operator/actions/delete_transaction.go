package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

// DeleteTransaction removes a transaction and reverses its balance effect.
type DeleteTransaction struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := findOwnedTransaction(ctx, writer, t.OwnerID, t.ID)
	if err != nil {
		return err
	}
	if err := adjustBalance(ctx, writer, existing.OwnerID, existing.AccountID, balanceEffect(existing).Neg()); err != nil {
		return err
	}
	return writer.Transactions.Delete(ctx, existing.ID)
}
