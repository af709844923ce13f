package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	Name      string `json:"name" doc:"Account name"`
	Kind      string `json:"kind" doc:"Savings or Current"`
	Balance   string `json:"balance" doc:"Decimal balance"`
	IsDefault bool   `json:"isDefault" doc:"Whether new transactions default to this account"`
}

func fromRecord(a ledger.AccountRecord) Account {
	return Account{
		ID:        a.ID.String(),
		Name:      a.Name,
		Kind:      string(a.Kind),
		Balance:   a.Balance.String(),
		IsDefault: a.IsDefault,
	}
}

// AccountIDInput addresses one account of the caller.
type AccountIDInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	ID      string `path:"id" format:"uuid" doc:"Account UUID"`
}

type AccountOutput struct {
	Body Account
}

func parseAccountIDInput(input *AccountIDInput) (ownerID, id uuid.UUID, err error) {
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

type accountGetter interface {
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.AccountRecord, error)
}

// GetAccountHandler handles GET /v1/accounts/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}",
		Summary:     "Get account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*AccountOutput, error) {
	ownerID, id, err := parseAccountIDInput(input)
	if err != nil {
		return nil, err
	}
	account, err := h.AccountService.GetAccount(ctx, ownerID, id)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to get account")
	}
	return &AccountOutput{Body: fromRecord(*account)}, nil
}
