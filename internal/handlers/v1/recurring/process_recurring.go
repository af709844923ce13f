// Package recurring exposes on-demand materialization of recurring
// transactions.
package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/fintrack-server/internal/service"
)

type ProcessRecurringInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	AsOf    string `query:"asOf" format:"date" doc:"Materialize occurrences due up to this date, defaults to today"`
}

type ProcessRecurringResponseBody struct {
	Templates    int                       `json:"templates" doc:"Recurring transactions examined"`
	Failed       int                       `json:"failed" doc:"Templates that could not be processed"`
	Materialized []transaction.Transaction `json:"materialized" doc:"Transactions created by this pass"`
}

type ProcessRecurringOutput struct {
	Body ProcessRecurringResponseBody
}

type dueProcessor interface {
	ProcessDue(ctx context.Context, asOf time.Time, ownerID *uuid.UUID) (service.ProcessResult, error)
}

// ProcessRecurringHandler handles POST /v1/recurring/process. It only touches
// the caller's own templates; the background job covers every owner.
type ProcessRecurringHandler struct {
	Processor dueProcessor
	Now       func() time.Time
}

func NewProcessRecurringHandler(p dueProcessor) *ProcessRecurringHandler {
	return &ProcessRecurringHandler{Processor: p, Now: time.Now}
}

func (h *ProcessRecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "process-recurring",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/process",
		Summary:     "Materialize due occurrences",
		Description: "Stores every occurrence of the caller's recurring transactions that is due and not yet materialized. Running it again for the same date creates nothing.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *ProcessRecurringHandler) handle(ctx context.Context, input *ProcessRecurringInput) (*ProcessRecurringOutput, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return nil, err
	}
	asOf, err := apiutil.ParseDate(input.AsOf, "asOf")
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = h.Now()
	}

	result, err := h.Processor.ProcessDue(ctx, asOf, &ownerID)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to process recurring transactions")
	}

	resp := ProcessRecurringResponseBody{
		Templates:    result.Templates,
		Failed:       result.Failed,
		Materialized: make([]transaction.Transaction, len(result.Materialized)),
	}
	for i, tx := range result.Materialized {
		resp.Materialized[i] = transaction.FromRecord(tx)
	}
	return &ProcessRecurringOutput{Body: resp}, nil
}
