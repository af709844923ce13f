package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
)

type accountDeleter interface {
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteAccountHandler handles DELETE /v1/accounts/{id}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/v1/accounts/{id}",
		Summary:     "Delete account",
		Description: "Deletes an account. Its transactions are kept without an account. Deleting the default hands the flag to the first remaining account by name.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *AccountIDInput) (*struct{}, error) {
	ownerID, id, err := parseAccountIDInput(input)
	if err != nil {
		return nil, err
	}
	if err := h.AccountService.DeleteAccount(ctx, ownerID, id); err != nil {
		return nil, apiutil.ServiceError(err, "failed to delete account")
	}
	return nil, nil
}
