package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

type UpdateAccountBody struct {
	Name    string `json:"name" required:"true" minLength:"1" maxLength:"100" doc:"Account name"`
	Kind    string `json:"kind" required:"true" enum:"Savings,Current" doc:"Account kind"`
	Balance string `json:"balance" required:"true" doc:"Decimal balance"`
}

type UpdateAccountInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	ID      string `path:"id" format:"uuid" doc:"Account UUID"`
	Body    UpdateAccountBody
}

type accountUpdater interface {
	UpdateAccount(ctx context.Context, account ledger.AccountRecord) (*ledger.AccountRecord, error)
}

// UpdateAccountHandler handles PUT /v1/accounts/{id}.
type UpdateAccountHandler struct {
	AccountService accountUpdater
}

func NewUpdateAccountHandler(svc accountUpdater) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/accounts/{id}",
		Summary:     "Replace account",
		Description: "Replaces name, kind and balance. Use the default endpoint to move the default flag.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseUpdateAccountInput(input *UpdateAccountInput) (ledger.AccountRecord, error) {
	ownerID, id, err := parseAccountIDInput(&AccountIDInput{OwnerID: input.OwnerID, ID: input.ID})
	if err != nil {
		return ledger.AccountRecord{}, err
	}
	balance, err := apiutil.ParseDecimal(input.Body.Balance, "balance")
	if err != nil {
		return ledger.AccountRecord{}, err
	}
	return ledger.AccountRecord{
		ID:      id,
		OwnerID: ownerID,
		Name:    input.Body.Name,
		Kind:    ledger.AccountKind(input.Body.Kind),
		Balance: balance,
	}, nil
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error) {
	record, err := parseUpdateAccountInput(input)
	if err != nil {
		return nil, err
	}
	updated, err := h.AccountService.UpdateAccount(ctx, record)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to update account")
	}
	return &AccountOutput{Body: fromRecord(*updated)}, nil
}
