package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

type defaultSetter interface {
	SetDefaultAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.AccountRecord, error)
}

// SetDefaultAccountHandler handles POST /v1/accounts/{id}/default.
type SetDefaultAccountHandler struct {
	AccountService defaultSetter
}

func NewSetDefaultAccountHandler(svc defaultSetter) *SetDefaultAccountHandler {
	return &SetDefaultAccountHandler{AccountService: svc}
}

func (h *SetDefaultAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-default-account",
		Method:      http.MethodPost,
		Path:        "/v1/accounts/{id}/default",
		Summary:     "Make account the default",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *SetDefaultAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*AccountOutput, error) {
	ownerID, id, err := parseAccountIDInput(input)
	if err != nil {
		return nil, err
	}
	account, err := h.AccountService.SetDefaultAccount(ctx, ownerID, id)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to set default account")
	}
	return &AccountOutput{Body: fromRecord(*account)}, nil
}
