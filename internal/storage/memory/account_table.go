package memory

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

type accountTable struct {
	v view
}

var _ storage.IAccountTable = (*accountTable)(nil)

func (t *accountTable) FindByID(_ context.Context, id uuid.UUID) (*ledger.AccountRecord, error) {
	var (
		row ledger.AccountRecord
		ok  bool
	)
	t.v.read(func(st *state) {
		row, ok = st.accounts[id]
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &row, nil
}

// FindByIDForUpdate is FindByID: the writer already excludes every other writer.
func (t *accountTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.AccountRecord, error) {
	return t.FindByID(ctx, id)
}

func (t *accountTable) Insert(_ context.Context, account *ledger.AccountRecord) (uuid.UUID, error) {
	id := account.ID
	if id == uuid.Nil {
		var err error
		if id, err = newID(); err != nil {
			return uuid.Nil, err
		}
	}
	row := *account
	row.ID = id
	err := t.v.write(func(st *state) error {
		if _, exists := st.accounts[id]; exists {
			return storage.ErrConflict
		}
		if row.IsDefault && hasOtherDefault(st, row) {
			return storage.ErrConflict
		}
		st.accounts[id] = row
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *accountTable) Update(_ context.Context, account *ledger.AccountRecord) error {
	row := *account
	return t.v.write(func(st *state) error {
		if _, ok := st.accounts[row.ID]; !ok {
			return storage.ErrNotFound
		}
		if row.IsDefault && hasOtherDefault(st, row) {
			return storage.ErrConflict
		}
		st.accounts[row.ID] = row
		return nil
	})
}

func (t *accountTable) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return t.v.write(func(st *state) error {
		row, ok := st.accounts[id]
		if !ok {
			return storage.ErrNotFound
		}
		row.Balance = balance
		st.accounts[id] = row
		return nil
	})
}

func (t *accountTable) ClearDefault(_ context.Context, ownerID uuid.UUID) error {
	return t.v.write(func(st *state) error {
		for id, row := range st.accounts {
			if row.OwnerID == ownerID && row.IsDefault {
				row.IsDefault = false
				st.accounts[id] = row
			}
		}
		return nil
	})
}

// Delete removes the account and unlinks the transactions booked against it.
func (t *accountTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.write(func(st *state) error {
		if _, ok := st.accounts[id]; !ok {
			return storage.ErrNotFound
		}
		delete(st.accounts, id)
		for txID, row := range st.transactions {
			if row.AccountID != nil && *row.AccountID == id {
				row.AccountID = nil
				st.transactions[txID] = row
			}
		}
		return nil
	})
}

// List orders by name then ID.
func (t *accountTable) List(_ context.Context, filter *storage.AccountFilter) ([]*ledger.AccountRecord, error) {
	if filter == nil {
		filter = &storage.AccountFilter{}
	}
	var rows []ledger.AccountRecord
	t.v.read(func(st *state) {
		for _, row := range st.accounts {
			if filter.OwnerID == nil || row.OwnerID == *filter.OwnerID {
				rows = append(rows, row)
			}
		}
	})

	slices.SortFunc(rows, func(a, b ledger.AccountRecord) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})
	rows = window(rows, filter.Limit, filter.Offset)

	result := make([]*ledger.AccountRecord, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func hasOtherDefault(st *state, account ledger.AccountRecord) bool {
	for id, row := range st.accounts {
		if id != account.ID && row.OwnerID == account.OwnerID && row.IsDefault {
			return true
		}
	}
	return false
}
