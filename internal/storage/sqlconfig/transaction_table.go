package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

const transactionsTable = "transactions"

var _ storage.ITransactionTable = (*TransactionsTable)(nil)

// TransactionsTable provides access to the transactions table.
type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*ledger.TransactionRecord, error) {
	q := psql.Select(
		sm.Columns(columnArgs(transactionColumns)...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, translate(err)
	}
	return row.record(), nil
}

// Insert creates a new transaction and returns its ID. A nil ID is generated
// here rather than by the database default.
func (t *TransactionsTable) Insert(ctx context.Context, tx *ledger.TransactionRecord) (uuid.UUID, error) {
	row := *tx
	if row.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return uuid.Nil, err
		}
		row.ID = id
	}
	q := psql.Insert(
		im.Into(transactionsTable, transactionColumns...),
		im.Values(args(transactionValues(&row))...),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, translate(err)
	}
	return id, nil
}

// Update overwrites every mutable column of the row with tx's ID.
func (t *TransactionsTable) Update(ctx context.Context, tx *ledger.TransactionRecord) error {
	values := transactionValues(tx)
	mods := []bob.Mod[*dialect.UpdateQuery]{um.Table(transactionsTable)}
	// skip id and owner_id
	for i := 2; i < len(transactionColumns); i++ {
		mods = append(mods, um.SetCol(transactionColumns[i]).ToArg(values[i]))
	}
	mods = append(mods, um.Where(psql.Quote("id").EQ(psql.Arg(tx.ID))))

	return expectOne(bob.Exec(ctx, t.exec, psql.Update(mods...)))
}

func (t *TransactionsTable) SetNextOccurrence(ctx context.Context, id uuid.UUID, next time.Time) error {
	q := psql.Update(
		um.Table(transactionsTable),
		um.SetCol("next_occurrence").ToArg(toNullTime(next)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return expectOne(bob.Exec(ctx, t.exec, q))
}

func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return expectOne(bob.Exec(ctx, t.exec, q))
}

// List returns transactions matching the filter. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *storage.TransactionFilter) ([]*ledger.TransactionRecord, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnArgs(transactionColumns)...),
		sm.From(transactionsTable),
	}
	if filter != nil {
		if filter.OwnerID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("owner_id").EQ(psql.Arg(*filter.OwnerID))))
		}
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.Start != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("occurred_on").GTE(psql.Arg(ledger.CalendarDate(*filter.Start)))))
		}
		if filter.End != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("occurred_on").LTE(psql.Arg(ledger.CalendarDate(*filter.End)))))
		}
		if filter.RecurringOnly {
			queryMods = append(queryMods, sm.Where(psql.Quote("is_recurring").EQ(psql.Arg(true))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("occurred_on")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*ledger.TransactionRecord, len(rows))
	for i, row := range rows {
		result[i] = row.record()
	}
	return result, nil
}

func columnArgs(columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = psql.Quote(c)
	}
	return out
}

func args(values []any) []bob.Expression {
	out := make([]bob.Expression, len(values))
	for i, v := range values {
		out[i] = psql.Arg(v)
	}
	return out
}
