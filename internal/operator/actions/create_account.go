package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// CreateAccount adds an account. An owner's first account becomes the
// default; asking for IsDefault on a later one moves the default to it.
type CreateAccount struct {
	Record ledger.AccountRecord

	Created ledger.AccountRecord
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	record := c.Record
	record.ID = uuid.Nil
	if err := record.Validate(); err != nil {
		return err
	}

	existing, err := writer.Accounts.List(ctx, &storage.AccountFilter{OwnerID: &record.OwnerID, Limit: 1})
	if err != nil {
		return err
	}
	switch {
	case len(existing) == 0:
		record.IsDefault = true
	case record.IsDefault:
		if err := writer.Accounts.ClearDefault(ctx, record.OwnerID); err != nil {
			return err
		}
	}

	id, err := writer.Accounts.Insert(ctx, &record)
	if err != nil {
		return err
	}
	record.ID = id
	c.Created = record
	return nil
}
