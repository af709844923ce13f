package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/service"
)

// ListTransactionsCursor is returned when more results exist. Pass its
// position and limit back as query parameters to fetch the next page.
type ListTransactionsCursor struct {
	Position int `json:"position" doc:"Offset of the next page"`
	Limit    int `json:"limit" doc:"Page size used for this cursor"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	OwnerID       string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	Position      int    `query:"position" minimum:"0" doc:"Offset to start from"`
	Limit         int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 0 for the default"`
	Start         string `query:"start" format:"date" doc:"First date to include, YYYY-MM-DD"`
	End           string `query:"end" format:"date" doc:"Last date to include, YYYY-MM-DD"`
	AccountID     string `query:"accountID" format:"uuid" doc:"Only transactions of this account"`
	RecurringOnly bool   `query:"recurringOnly" doc:"Only recurring templates"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction          `json:"transactions" doc:"Page of transactions, newest first"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

type transactionLister interface {
	ListTransactions(ctx context.Context, ownerID uuid.UUID, query service.TransactionQuery, cursor *service.TransactionCursor) ([]ledger.TransactionRecord, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns a page of the caller's transactions, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input. Without a
// position or limit the service uses its default page.
func parseListTransactionsInput(input *ListTransactionsInput) (ownerID uuid.UUID, query service.TransactionQuery, cursor *service.TransactionCursor, err error) {
	ownerID, err = apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return uuid.Nil, query, nil, err
	}
	if query.Window.Start, err = apiutil.ParseDate(input.Start, "start"); err != nil {
		return uuid.Nil, query, nil, err
	}
	if query.Window.End, err = apiutil.ParseDate(input.End, "end"); err != nil {
		return uuid.Nil, query, nil, err
	}
	if query.AccountID, err = apiutil.ParseOptionalUUID(input.AccountID, "accountID"); err != nil {
		return uuid.Nil, query, nil, err
	}
	query.RecurringOnly = input.RecurringOnly

	if input.Position > 0 || input.Limit > 0 {
		cursor = &service.TransactionCursor{Position: input.Position, Limit: input.Limit}
	}
	return ownerID, query, cursor, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	ownerID, query, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "listTransactionsMs")
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, ownerID, query, requestCursor)
	stopTimer()
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to list transactions")
	}
	logging.Add(ctx, "transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = FromRecord(tx)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
