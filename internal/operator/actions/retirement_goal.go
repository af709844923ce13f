package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// UpsertRetirementGoal saves the owner's only goal, replacing any earlier one.
type UpsertRetirementGoal struct {
	Goal ledger.RetirementGoal

	Created bool
}

func (u *UpsertRetirementGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := u.Goal.Validate(); err != nil {
		return err
	}
	created, err := writer.Goals.Upsert(ctx, &u.Goal)
	if err != nil {
		return err
	}
	u.Created = created
	return nil
}

type DeleteRetirementGoal struct {
	OwnerID uuid.UUID
}

func (d *DeleteRetirementGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Goals.Delete(ctx, d.OwnerID); err != nil {
		return fmt.Errorf("retirement goal of %s: %w", d.OwnerID, err)
	}
	return nil
}
