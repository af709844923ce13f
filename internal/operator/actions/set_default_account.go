package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

type SetDefaultAccount struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
}

func (s *SetDefaultAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := findOwnedAccount(ctx, writer, s.OwnerID, s.ID)
	if err != nil {
		return err
	}
	if account.IsDefault {
		return nil
	}
	if err := writer.Accounts.ClearDefault(ctx, s.OwnerID); err != nil {
		return err
	}
	account.IsDefault = true
	return writer.Accounts.Update(ctx, account)
}
