package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/operator"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/memory"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type fixture struct {
	svc       *Service
	store     *storage.Storage
	publisher *mockPublisher
	hook      *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	store := storage.New(memory.New())
	op := operator.NewOperatorDelegator(store, logger, 2)
	op.Start()
	t.Cleanup(op.Stop)

	publisher := new(mockPublisher)
	return &fixture{
		svc:       NewService(store, op, publisher, logger),
		store:     store,
		publisher: publisher,
		hook:      hook,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func txn(owner uuid.UUID, kind ledger.Kind, category, amount string, on time.Time) ledger.TransactionRecord {
	return ledger.TransactionRecord{
		OwnerID:       owner,
		Amount:        decimal.RequireFromString(amount),
		Category:      category,
		Kind:          kind,
		PaymentMethod: ledger.PaymentCash,
		OccurredOn:    on,
	}
}

func (f *fixture) create(t *testing.T, tx ledger.TransactionRecord) *ledger.TransactionRecord {
	t.Helper()
	created, err := f.svc.Transaction.CreateTransaction(context.Background(), tx)
	require.NoError(t, err)
	return created
}
