package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// TransactionIDInput addresses one transaction of the caller.
type TransactionIDInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	ID      string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

type GetTransactionOutput struct {
	Body Transaction
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*ledger.TransactionRecord, error)
}

// GetTransactionHandler handles GET /v1/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseTransactionIDInput(input *TransactionIDInput) (ownerID, id uuid.UUID, err error) {
	ownerID, err = apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err = apiutil.ParseUUID(input.ID, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return ownerID, id, nil
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*GetTransactionOutput, error) {
	ownerID, id, err := parseTransactionIDInput(input)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: FromRecord(*tx)}, nil
}
