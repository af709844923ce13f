package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name      string `json:"name" required:"true" minLength:"1" maxLength:"100" doc:"Account name"`
	Kind      string `json:"kind" required:"true" enum:"Savings,Current" doc:"Account kind"`
	Balance   string `json:"balance,omitempty" doc:"Opening balance, defaults to 0"`
	IsDefault bool   `json:"isDefault,omitempty" doc:"Make this the default account. An owner's first account always is."`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	Body    CreateAccountBody
}

type accountCreator interface {
	CreateAccount(ctx context.Context, account ledger.AccountRecord) (*ledger.AccountRecord, error)
}

// CreateAccountHandler handles POST /v1/accounts.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/accounts",
		Summary:       "Create account",
		Description:   "Creates a new account for the caller.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateAccountInput parses and validates the API input.
func parseCreateAccountInput(input *CreateAccountInput) (ledger.AccountRecord, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return ledger.AccountRecord{}, err
	}

	balance := decimal.Zero
	if input.Body.Balance != "" {
		if balance, err = apiutil.ParseDecimal(input.Body.Balance, "balance"); err != nil {
			return ledger.AccountRecord{}, err
		}
	}

	return ledger.AccountRecord{
		OwnerID:   ownerID,
		Name:      input.Body.Name,
		Kind:      ledger.AccountKind(input.Body.Kind),
		Balance:   balance,
		IsDefault: input.Body.IsDefault,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error) {
	record, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.AccountService.CreateAccount(ctx, record)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to create account")
	}

	return &AccountOutput{Body: fromRecord(*created)}, nil
}
