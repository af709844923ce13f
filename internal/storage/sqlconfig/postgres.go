package sqlconfig

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

// Postgres is the storage backend used in production.
type Postgres struct {
	db  *sql.DB
	bob bob.DB
}

var _ storage.Backend = (*Postgres)(nil)

// Open connects to the database at dsn and checks it is reachable.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{db: db, bob: bob.NewDB(db)}, nil
}

func (p *Postgres) Tables() storage.Tables {
	return tablesFor(p.bob)
}

func (p *Postgres) Begin(ctx context.Context) (*storage.Writer, error) {
	tx, err := p.bob.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return storage.NewWriter(tablesFor(tx), &bobTx{tx: tx}), nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func tablesFor(exec bob.Executor) storage.Tables {
	return storage.Tables{
		Transactions: NewTransactionsTable(exec),
		Accounts:     NewAccountsTable(exec),
		Goals:        NewGoalsTable(exec),
	}
}

type bobTx struct {
	tx bob.Tx
}

func (t *bobTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *bobTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
