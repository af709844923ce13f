package account

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

// ListAccountsCursor is returned when more results exist.
type ListAccountsCursor struct {
	Position int `json:"position" doc:"Offset of the next page"`
	Limit    int `json:"limit" doc:"Page size used for this cursor"`
}

type ListAccountsInput struct {
	OwnerID  string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	Position int    `query:"position" minimum:"0" doc:"Offset to start from"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 0 for the default"`
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts   []Account           `json:"accounts" doc:"Page of accounts, by name"`
	NextCursor *ListAccountsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

type accountLister interface {
	ListAccounts(ctx context.Context, ownerID uuid.UUID, cursor *service.AccountCursor) ([]ledger.AccountRecord, *service.AccountCursor, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns a page of the caller's accounts ordered by name.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseListAccountsInput(input *ListAccountsInput) (uuid.UUID, *service.AccountCursor, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return uuid.Nil, nil, err
	}
	if input.Position == 0 && input.Limit == 0 {
		return ownerID, nil, nil
	}
	return ownerID, &service.AccountCursor{Position: input.Position, Limit: input.Limit}, nil
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	ownerID, requestCursor, err := parseListAccountsInput(input)
	if err != nil {
		return nil, err
	}

	accounts, nextCursor, err := h.AccountService.ListAccounts(ctx, ownerID, requestCursor)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to list accounts")
	}
	logging.Add(ctx, "accountCount", len(accounts))

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(accounts)),
	}
	for i, a := range accounts {
		resp.Accounts[i] = fromRecord(a)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListAccountsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListAccountsOutput{Body: resp}, nil
}
