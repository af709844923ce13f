package sqlconfig

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

const goalsTable = "retirement_goals"

var _ storage.IGoalTable = (*GoalsTable)(nil)

// GoalsTable provides access to retirement_goals, keyed by owner.
type GoalsTable struct {
	exec bob.Executor
}

func NewGoalsTable(exec bob.Executor) *GoalsTable {
	return &GoalsTable{exec: exec}
}

func (t *GoalsTable) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, error) {
	q := psql.Select(
		sm.Columns(columnArgs(goalColumns)...),
		sm.From(goalsTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[goalRow]())
	if err != nil {
		return nil, translate(err)
	}
	return row.record(), nil
}

// Upsert inserts the goal or replaces the owner's existing one and reports
// whether a new row was created.
func (t *GoalsTable) Upsert(ctx context.Context, goal *ledger.RetirementGoal) (bool, error) {
	_, err := t.FindByOwner(ctx, goal.OwnerID)
	created := errors.Is(err, storage.ErrNotFound)
	if err != nil && !created {
		return false, err
	}

	q := psql.Insert(
		im.Into(goalsTable, goalColumns...),
		im.Values(args([]any{
			goal.OwnerID,
			goal.CurrentAge,
			goal.RetirementAge,
			goal.CurrentSavings,
			goal.MonthlyContribution,
			goal.ExpectedAnnualReturnPct,
			goal.InflationRatePct,
			goal.DesiredMonthlyIncome,
			goal.LifeExpectancy,
		})...),
		im.OnConflict("owner_id").DoUpdate(im.SetExcluded(goalColumns[1:]...)),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return false, translate(err)
	}
	return created, nil
}

func (t *GoalsTable) Delete(ctx context.Context, ownerID uuid.UUID) error {
	q := psql.Delete(
		dm.From(goalsTable),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	return expectOne(bob.Exec(ctx, t.exec, q))
}
