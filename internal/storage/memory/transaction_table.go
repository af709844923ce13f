package memory

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

type transactionTable struct {
	v view
}

var _ storage.ITransactionTable = (*transactionTable)(nil)

func (t *transactionTable) FindByID(_ context.Context, id uuid.UUID) (*ledger.TransactionRecord, error) {
	var (
		row ledger.TransactionRecord
		ok  bool
	)
	t.v.read(func(st *state) {
		row, ok = st.transactions[id]
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &row, nil
}

func (t *transactionTable) Insert(_ context.Context, tx *ledger.TransactionRecord) (uuid.UUID, error) {
	id := tx.ID
	if id == uuid.Nil {
		var err error
		if id, err = newID(); err != nil {
			return uuid.Nil, err
		}
	}
	row := cloneTransaction(*tx)
	row.ID = id
	err := t.v.write(func(st *state) error {
		if _, exists := st.transactions[id]; exists {
			return storage.ErrConflict
		}
		st.transactions[id] = row
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *transactionTable) Update(_ context.Context, tx *ledger.TransactionRecord) error {
	row := cloneTransaction(*tx)
	return t.v.write(func(st *state) error {
		if _, ok := st.transactions[row.ID]; !ok {
			return storage.ErrNotFound
		}
		st.transactions[row.ID] = row
		return nil
	})
}

func (t *transactionTable) SetNextOccurrence(_ context.Context, id uuid.UUID, next time.Time) error {
	return t.v.write(func(st *state) error {
		row, ok := st.transactions[id]
		if !ok {
			return storage.ErrNotFound
		}
		row.NextOccurrence = next
		st.transactions[id] = row
		return nil
	})
}

// Delete removes the row and unlinks any instance materialized from it.
func (t *transactionTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.write(func(st *state) error {
		if _, ok := st.transactions[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.transactions, id)
		for otherID, row := range st.transactions {
			if row.RecurrenceOf != nil && *row.RecurrenceOf == id {
				row.RecurrenceOf = nil
				st.transactions[otherID] = row
			}
		}
		return nil
	})
}

// List orders by OccurredOn then ID, newest first.
func (t *transactionTable) List(_ context.Context, filter *storage.TransactionFilter) ([]*ledger.TransactionRecord, error) {
	if filter == nil {
		filter = &storage.TransactionFilter{}
	}
	var rows []ledger.TransactionRecord
	t.v.read(func(st *state) {
		for _, row := range st.transactions {
			if matchesTransaction(row, filter) {
				rows = append(rows, row)
			}
		}
	})

	slices.SortFunc(rows, func(a, b ledger.TransactionRecord) int {
		if c := b.OccurredOn.Compare(a.OccurredOn); c != 0 {
			return c
		}
		return bytes.Compare(b.ID.Bytes(), a.ID.Bytes())
	})
	rows = window(rows, filter.Limit, filter.Offset)

	result := make([]*ledger.TransactionRecord, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func matchesTransaction(row ledger.TransactionRecord, filter *storage.TransactionFilter) bool {
	if filter.OwnerID != nil && row.OwnerID != *filter.OwnerID {
		return false
	}
	if filter.AccountID != nil && (row.AccountID == nil || *row.AccountID != *filter.AccountID) {
		return false
	}
	if filter.Start != nil && row.OccurredOn.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && row.OccurredOn.After(*filter.End) {
		return false
	}
	if filter.RecurringOnly && !row.IsRecurring {
		return false
	}
	return true
}

func cloneTransaction(tx ledger.TransactionRecord) ledger.TransactionRecord {
	tx.AccountID = copyID(tx.AccountID)
	tx.RecurrenceOf = copyID(tx.RecurrenceOf)
	return tx
}
