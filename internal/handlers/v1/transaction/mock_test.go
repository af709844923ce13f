package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/service"
)

// mockTransactionService satisfies every service interface of this package.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, tx ledger.TransactionRecord) (*ledger.TransactionRecord, error) {
	args := m.Called(ctx, tx)
	created, _ := args.Get(0).(*ledger.TransactionRecord)
	return created, args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*ledger.TransactionRecord, error) {
	args := m.Called(ctx, ownerID, id)
	tx, _ := args.Get(0).(*ledger.TransactionRecord)
	return tx, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, tx ledger.TransactionRecord) (*ledger.TransactionRecord, error) {
	args := m.Called(ctx, tx)
	updated, _ := args.Get(0).(*ledger.TransactionRecord)
	return updated, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery, cursor *service.TransactionCursor) ([]ledger.TransactionRecord, *service.TransactionCursor, error) {
	args := m.Called(ctx, ownerID, query, cursor)
	txs, _ := args.Get(0).([]ledger.TransactionRecord)
	next, _ := args.Get(1).(*service.TransactionCursor)
	return txs, next, args.Error(2)
}

func (m *mockTransactionService) Occurrences(ctx context.Context, ownerID, id uuid.UUID, asOf time.Time) ([]time.Time, error) {
	args := m.Called(ctx, ownerID, id, asOf)
	dates, _ := args.Get(0).([]time.Time)
	return dates, args.Error(1)
}

func ownerHeader(ownerID uuid.UUID) string {
	return "X-User-ID: " + ownerID.String()
}
