package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// RecurringProcessor turns due occurrences of recurring transactions into
// stored transactions.
type RecurringProcessor struct {
	storage   *storage.Storage
	operator  Processor
	publisher events.Publisher
	logger    *logrus.Logger
}

// ProcessResult counts what one pass did.
type ProcessResult struct {
	Templates    int
	Materialized []ledger.TransactionRecord
	Failed       int
}

func NewRecurringProcessor(store *storage.Storage, op Processor, publisher events.Publisher, logger *logrus.Logger) *RecurringProcessor {
	return &RecurringProcessor{storage: store, operator: op, publisher: publisher, logger: logger}
}

// ProcessDue materializes every occurrence due up to asOf. A nil ownerID
// processes every owner. A template that fails is logged and skipped.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, asOf time.Time, ownerID *uuid.UUID) (ProcessResult, error) {
	templates, err := p.storage.Transactions.List(ctx, &storage.TransactionFilter{
		OwnerID:       ownerID,
		RecurringOnly: true,
	})
	if err != nil {
		return ProcessResult{}, err
	}

	logData := logging.NewLogData(p.logger)
	endTimer := logData.AddTiming("durationMs")
	result := ProcessResult{Templates: len(templates), Materialized: []ledger.TransactionRecord{}}

	for _, template := range templates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		action := &actions.MaterializeRecurrence{
			OwnerID:    template.OwnerID,
			TemplateID: template.ID,
			AsOf:       asOf,
		}
		if err := p.operator.Process(ctx, action); err != nil {
			result.Failed++
			p.logger.WithError(err).WithFields(logrus.Fields{
				"templateID": template.ID,
				"ownerID":    template.OwnerID,
			}).Error("RecurringProcessor.Materialize.Error")
			continue
		}

		for _, instance := range action.Created {
			publish(ctx, p.publisher, p.logger, events.NewTransactionEvent(events.TransactionMaterialized, instance))
		}
		result.Materialized = append(result.Materialized, action.Created...)
	}

	endTimer()
	logData.AddData("asOf", asOf.Format(time.DateOnly))
	logData.AddData("templates", result.Templates)
	logData.AddData("materialized", len(result.Materialized))
	logData.AddData("failed", result.Failed)
	logData.Log().Info("RecurringProcessor.ProcessDue.Complete")

	return result, nil
}

// Run processes due occurrences immediately and then on every tick until ctx
// is cancelled.
func (p *RecurringProcessor) Run(ctx context.Context, interval time.Duration, now func() time.Time) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.ProcessDue(ctx, now(), nil); err != nil && ctx.Err() == nil {
			p.logger.WithError(err).Error("RecurringProcessor.Run.Error")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
