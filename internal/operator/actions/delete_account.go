package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

// DeleteAccount removes an account; its transactions stay, unlinked. When the
// default goes, the owner's first remaining account by name inherits it.
type DeleteAccount struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := findOwnedAccount(ctx, writer, d.OwnerID, d.ID)
	if err != nil {
		return err
	}
	if err := writer.Accounts.Delete(ctx, existing.ID); err != nil {
		return err
	}
	if !existing.IsDefault {
		return nil
	}

	remaining, err := writer.Accounts.List(ctx, &storage.AccountFilter{OwnerID: &d.OwnerID, Limit: 1})
	if err != nil || len(remaining) == 0 {
		return err
	}
	heir := remaining[0]
	heir.IsDefault = true
	return writer.Accounts.Update(ctx, heir)
}
