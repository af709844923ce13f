package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// MaterializeRecurrence stores every occurrence of a recurring transaction
// due up to AsOf and advances the template's NextOccurrence cursor. The
// template is re-read inside the transaction, so running it twice for the
// same AsOf creates nothing the second time.
type MaterializeRecurrence struct {
	OwnerID    uuid.UUID
	TemplateID uuid.UUID
	AsOf       time.Time

	Created []ledger.TransactionRecord
}

func (m *MaterializeRecurrence) Perform(ctx context.Context, writer *storage.Writer) error {
	template, err := findOwnedTransaction(ctx, writer, m.OwnerID, m.TemplateID)
	if err != nil {
		return err
	}

	due, err := ledger.DueOccurrences(*template, m.AsOf)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	materialization := ledger.Materialize(*template, due)
	created := make([]ledger.TransactionRecord, 0, len(materialization.Instances))
	for _, instance := range materialization.Instances {
		err := adjustBalance(ctx, writer, instance.OwnerID, instance.AccountID, balanceEffect(&instance))
		if errors.Is(err, storage.ErrNotFound) {
			// the account went away after the template was created
			instance.AccountID = nil
		} else if err != nil {
			return err
		}

		id, err := writer.Transactions.Insert(ctx, &instance)
		if err != nil {
			return err
		}
		instance.ID = id
		created = append(created, instance)
	}

	if err := writer.Transactions.SetNextOccurrence(ctx, template.ID, materialization.NextOccurrence); err != nil {
		return err
	}
	m.Created = created
	return nil
}
