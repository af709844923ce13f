package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	logger  *logrus.Logger
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, logger *logrus.Logger, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		logger:  logger,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) processItem(item ActionItem) (err error) {
	// the caller gave up waiting
	if ctxErr := item.ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = writer.Rollback()
			o.logger.WithField("action", fmt.Sprintf("%T", item.action)).Errorf("Operator.Perform.Panic: %v", r)
			err = fmt.Errorf("action %T panicked: %v", item.action, r)
		}
	}()

	if err = item.action.Perform(item.ctx, writer); err != nil {
		_ = writer.Rollback()
		o.logger.WithError(err).WithField("action", fmt.Sprintf("%T", item.action)).Debug("Operator.Perform.RolledBack")
		return err
	}

	return writer.Commit()
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
