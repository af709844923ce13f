package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// Processor runs an action inside a storage transaction. The operator
// delegator implements it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Retirement  *RetirementService
	Recurring   *RecurringProcessor
}

// NewService wires every service to the same storage and operator.
func NewService(store *storage.Storage, op Processor, publisher events.Publisher, logger *logrus.Logger) *Service {
	transactions := NewTransactionService(store, op, publisher, logger)
	return &Service{
		Transaction: transactions,
		Account:     NewAccountService(store, op),
		Retirement:  NewRetirementService(store, op),
		Recurring:   NewRecurringProcessor(store, op, publisher, logger),
	}
}

// publish never fails the caller; the ledger change is already committed.
func publish(ctx context.Context, publisher events.Publisher, logger *logrus.Logger, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"eventType":     event.Type,
			"transactionID": event.TransactionID,
		}).Warn("Service.Publish.Error")
	}
}
