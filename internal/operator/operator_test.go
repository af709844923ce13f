package operator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/memory"
)

type actionFunc func(ctx context.Context, writer *storage.Writer) error

func (f actionFunc) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func newDelegator(t *testing.T, workers int) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := storage.New(memory.New())
	d := NewOperatorDelegator(s, logger, workers)
	d.Start()
	t.Cleanup(d.Stop)
	return d, s
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	d, s := newDelegator(t, 2)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	action := &actions.CreateAccount{Record: ledger.AccountRecord{OwnerID: owner, Name: "Main", Kind: ledger.AccountSavings}}
	require.NoError(t, d.Process(ctx, action))

	got, err := s.Accounts.FindByID(ctx, action.Created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", got.Name)
}

func TestProcess_RollsBackOnError(t *testing.T) {
	d, s := newDelegator(t, 1)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	boom := errors.New("boom")

	err := d.Process(ctx, actionFunc(func(ctx context.Context, w *storage.Writer) error {
		_, err := w.Accounts.Insert(ctx, &ledger.AccountRecord{OwnerID: owner, Name: "Ghost", Kind: ledger.AccountCurrent})
		assert.NoError(t, err)
		return boom
	}))

	assert.ErrorIs(t, err, boom)
	rows, err := s.Accounts.List(ctx, &storage.AccountFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProcess_RecoversPanic(t *testing.T) {
	d, _ := newDelegator(t, 1)

	err := d.Process(context.Background(), actionFunc(func(context.Context, *storage.Writer) error {
		panic("bad action")
	}))
	assert.ErrorContains(t, err, "panicked")

	// the worker survives
	assert.NoError(t, d.Process(context.Background(), actionFunc(func(context.Context, *storage.Writer) error { return nil })))
}

func TestProcess_ConcurrentBalanceUpdatesAreSerialised(t *testing.T) {
	d, s := newDelegator(t, 4)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	create := &actions.CreateAccount{Record: ledger.AccountRecord{OwnerID: owner, Name: "Main", Kind: ledger.AccountSavings}}
	require.NoError(t, d.Process(ctx, create))
	accountID := create.Created.ID

	var wg sync.WaitGroup
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Process(ctx, &actions.CreateTransaction{Record: ledger.TransactionRecord{
				OwnerID:       owner,
				AccountID:     &accountID,
				Amount:        decimal.RequireFromString("2.50"),
				Category:      "Salary",
				Kind:          ledger.KindIncome,
				PaymentMethod: ledger.PaymentGPay,
				OccurredOn:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			}}))
		}()
	}
	wg.Wait()

	account, err := s.Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("62.5")), account.Balance.String())
}

func TestProcess_AfterStop(t *testing.T) {
	d, _ := newDelegator(t, 1)
	assert.False(t, d.Stopped())
	d.Stop()
	d.Stop()
	assert.True(t, d.Stopped())

	err := d.Process(context.Background(), actionFunc(func(context.Context, *storage.Writer) error { return nil }))

	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CancelledContext(t *testing.T) {
	d, _ := newDelegator(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, actionFunc(func(context.Context, *storage.Writer) error { return nil }))

	assert.ErrorIs(t, err, context.Canceled)
}
