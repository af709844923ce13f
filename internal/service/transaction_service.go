package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	operator  Processor
	publisher events.Publisher
	logger    *logrus.Logger
}

func NewTransactionService(store *storage.Storage, op Processor, publisher events.Publisher, logger *logrus.Logger) *TransactionService {
	return &TransactionService{storage: store, operator: op, publisher: publisher, logger: logger}
}

// CreateTransaction stores tx for its owner and returns the stored record.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx ledger.TransactionRecord) (*ledger.TransactionRecord, error) {
	action := &actions.CreateTransaction{Record: tx}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	created, err := s.storage.Transactions.FindByID(ctx, action.CreatedID)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.publisher, s.logger, events.NewTransactionEvent(events.TransactionCreated, *created))
	return created, nil
}

// GetTransaction reports another owner's transaction as not found.
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*ledger.TransactionRecord, error) {
	tx, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.OwnerID != ownerID {
		return nil, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	return tx, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, tx ledger.TransactionRecord) (*ledger.TransactionRecord, error) {
	action := &actions.UpdateTransaction{Record: tx}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &action.Updated, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	existing, err := s.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.operator.Process(ctx, &actions.DeleteTransaction{OwnerID: ownerID, ID: id}); err != nil {
		return err
	}
	publish(ctx, s.publisher, s.logger, events.NewTransactionEvent(events.TransactionDeleted, *existing))
	return nil
}

// ListTransactions returns a page of the owner's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, query TransactionQuery, cursor *TransactionCursor) ([]ledger.TransactionRecord, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = min(cursor.Limit, maxLimit)
		}
		offset = cursor.Position
	}

	filter := windowFilter(ownerID, query.Window)
	filter.AccountID = query.AccountID
	filter.RecurringOnly = query.RecurringOnly
	filter.Limit = limit
	filter.Offset = offset

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return deref(rows), nextCursor, nil
}

// Summarize aggregates the owner's transactions inside window.
func (s *TransactionService) Summarize(ctx context.Context, ownerID uuid.UUID, window ledger.Window) (ledger.Summary, error) {
	stopTimer := logging.Time(ctx, "summaryQueryMs")
	rows, err := s.storage.Transactions.List(ctx, windowFilter(ownerID, window))
	stopTimer()
	if err != nil {
		return ledger.Summary{}, err
	}
	logging.Add(ctx, "summaryRows", len(rows))

	return ledger.Summarize(deref(rows), window)
}

// Occurrences lists the dates on which a recurring transaction falls due
// after its last materialized occurrence, up to asOf.
func (s *TransactionService) Occurrences(ctx context.Context, ownerID, id uuid.UUID, asOf time.Time) ([]time.Time, error) {
	tx, err := s.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ledger.DueOccurrences(*tx, asOf)
}

// windowFilter pushes the window down to storage. An inverted window still
// reaches Summarize, which reports it as empty.
func windowFilter(ownerID uuid.UUID, window ledger.Window) *storage.TransactionFilter {
	filter := &storage.TransactionFilter{OwnerID: &ownerID}
	if !window.Start.IsZero() {
		start := ledger.CalendarDate(window.Start)
		filter.Start = &start
	}
	if !window.End.IsZero() {
		end := ledger.CalendarDate(window.End)
		filter.End = &end
	}
	return filter
}

func deref[T any](rows []*T) []T {
	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = *row
	}
	return out
}
