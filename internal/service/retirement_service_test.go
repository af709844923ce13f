package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

func TestSaveGoal_CreateThenReplace(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())

	created, err := f.svc.Retirement.SaveGoal(context.Background(), ledger.NewRetirementGoal(owner))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.Retirement.SaveGoal(context.Background(), ledger.NewRetirementGoal(owner, ledger.WithCurrentAge(30)))
	require.NoError(t, err)
	assert.False(t, created)

	goal, err := f.svc.Retirement.GetGoal(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 30, goal.CurrentAge)
}

func TestSaveGoal_Invalid(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())

	_, err := f.svc.Retirement.SaveGoal(context.Background(),
		ledger.NewRetirementGoal(owner, ledger.WithCurrentAge(70), ledger.WithRetirementAge(65)))

	assert.ErrorIs(t, err, ledger.ErrInvalidGoal)
	_, err = f.svc.Retirement.GetGoal(context.Background(), owner)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProject_StoredGoal(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())
	_, err := f.svc.Retirement.SaveGoal(context.Background(), ledger.NewRetirementGoal(owner,
		ledger.WithCurrentAge(35),
		ledger.WithRetirementAge(65),
		ledger.WithCurrentSavings(decimal.NewFromInt(50000)),
		ledger.WithMonthlyContribution(decimal.NewFromInt(5000)),
		ledger.WithDesiredMonthlyIncome(decimal.NewFromInt(60000)),
	))
	require.NoError(t, err)

	goal, projection, err := f.svc.Retirement.Project(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, owner, goal.OwnerID)
	assert.Equal(t, 30, projection.YearsToRetirement)
	assert.Equal(t, "18000000", projection.EstimatedTotalNeeds.String())
}

func TestDeleteGoal(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())
	_, err := f.svc.Retirement.SaveGoal(context.Background(), ledger.NewRetirementGoal(owner))
	require.NoError(t, err)

	require.NoError(t, f.svc.Retirement.DeleteGoal(context.Background(), owner))

	_, _, err = f.svc.Retirement.Project(context.Background(), owner)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, f.svc.Retirement.DeleteGoal(context.Background(), owner), storage.ErrNotFound)
}
