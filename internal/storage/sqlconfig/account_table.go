package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
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

const accountsTable = "accounts"

// AccountsTable provides access to the accounts table.
type AccountsTable struct {
	exec bob.Executor
}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ storage.IAccountTable = (*AccountsTable)(nil)

func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountRecord, error) {
	return t.find(ctx, id, false)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (t *AccountsTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.AccountRecord, error) {
	return t.find(ctx, id, true)
}

func (t *AccountsTable) find(ctx context.Context, id uuid.UUID, forUpdate bool) (*ledger.AccountRecord, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnArgs(accountColumns)...),
		sm.From(accountsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}
	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, translate(err)
	}
	return row.record(), nil
}

// Insert creates a new account and returns its ID.
func (t *AccountsTable) Insert(ctx context.Context, account *ledger.AccountRecord) (uuid.UUID, error) {
	id := account.ID
	if id == uuid.Nil {
		var err error
		if id, err = uuid.NewV4(); err != nil {
			return uuid.Nil, err
		}
	}
	q := psql.Insert(
		im.Into(accountsTable, accountColumns...),
		im.Values(args([]any{id, account.OwnerID, account.Name, string(account.Kind), account.Balance, account.IsDefault})...),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, translate(err)
	}
	return id, nil
}

func (t *AccountsTable) Update(ctx context.Context, account *ledger.AccountRecord) error {
	q := psql.Update(
		um.Table(accountsTable),
		um.SetCol("name").ToArg(account.Name),
		um.SetCol("kind").ToArg(string(account.Kind)),
		um.SetCol("balance").ToArg(account.Balance),
		um.SetCol("is_default").ToArg(account.IsDefault),
		um.Where(psql.Quote("id").EQ(psql.Arg(account.ID))),
	)
	return expectOne(bob.Exec(ctx, t.exec, q))
}

// UpdateBalance updates the balance for a given account.
func (t *AccountsTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(accountsTable),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return expectOne(bob.Exec(ctx, t.exec, q))
}

func (t *AccountsTable) ClearDefault(ctx context.Context, ownerID uuid.UUID) error {
	q := psql.Update(
		um.Table(accountsTable),
		um.SetCol("is_default").ToArg(false),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("is_default").EQ(psql.Arg(true))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return translate(err)
}

// Delete removes the account. The foreign key unlinks its transactions.
func (t *AccountsTable) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(accountsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return expectOne(bob.Exec(ctx, t.exec, q))
}

// List returns accounts matching the filter. Nil filter returns all.
func (t *AccountsTable) List(ctx context.Context, filter *storage.AccountFilter) ([]*ledger.AccountRecord, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnArgs(accountColumns)...),
		sm.From(accountsTable),
	}
	if filter != nil {
		if filter.OwnerID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("owner_id").EQ(psql.Arg(*filter.OwnerID))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*ledger.AccountRecord, len(rows))
	for i, row := range rows {
		result[i] = row.record()
	}
	return result, nil
}
