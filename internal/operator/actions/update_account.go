package actions

import (
	"context"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// UpdateAccount changes name, kind and balance. The default flag is left
// alone; SetDefaultAccount moves it.
type UpdateAccount struct {
	Record ledger.AccountRecord

	Updated ledger.AccountRecord
}

func (u *UpdateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := findOwnedAccount(ctx, writer, u.Record.OwnerID, u.Record.ID)
	if err != nil {
		return err
	}

	record := u.Record
	record.IsDefault = existing.IsDefault
	if err := record.Validate(); err != nil {
		return err
	}
	if err := writer.Accounts.Update(ctx, &record); err != nil {
		return err
	}
	u.Updated = record
	return nil
}
