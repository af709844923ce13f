package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

type UpdateTransactionInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	ID      string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body    TransactionBody
}

type UpdateTransactionOutput struct {
	Body Transaction
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, tx ledger.TransactionRecord) (*ledger.TransactionRecord, error)
}

// UpdateTransactionHandler handles PUT /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions/{id}",
		Summary:     "Replace transaction",
		Description: "Replaces every caller-editable field. The linked account balances follow the change.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (ledger.TransactionRecord, error) {
	ownerID, id, err := parseTransactionIDInput(&TransactionIDInput{OwnerID: input.OwnerID, ID: input.ID})
	if err != nil {
		return ledger.TransactionRecord{}, err
	}
	record, err := parseTransactionBody(ownerID, input.Body)
	if err != nil {
		return ledger.TransactionRecord{}, err
	}
	record.ID = id
	return record, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	record, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.TransactionService.UpdateTransaction(ctx, record)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Body: FromRecord(*updated)}, nil
}
