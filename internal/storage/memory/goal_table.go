package memory

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

type goalTable struct {
	v view
}

var _ storage.IGoalTable = (*goalTable)(nil)

func (t *goalTable) FindByOwner(_ context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, error) {
	var (
		row ledger.RetirementGoal
		ok  bool
	)
	t.v.read(func(st *state) {
		row, ok = st.goals[ownerID]
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &row, nil
}

func (t *goalTable) Upsert(_ context.Context, goal *ledger.RetirementGoal) (bool, error) {
	row := *goal
	var created bool
	err := t.v.write(func(st *state) error {
		_, exists := st.goals[row.OwnerID]
		created = !exists
		st.goals[row.OwnerID] = row
		return nil
	})
	return created, err
}

func (t *goalTable) Delete(_ context.Context, ownerID uuid.UUID) error {
	return t.v.write(func(st *state) error {
		if _, ok := st.goals[ownerID]; !ok {
			return storage.ErrNotFound
		}
		delete(st.goals, ownerID)
		return nil
	})
}
