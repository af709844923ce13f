package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
)

type OccurrencesInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	ID      string `path:"id" format:"uuid" doc:"Recurring transaction UUID"`
	AsOf    string `query:"asOf" format:"date" doc:"Last date to include, defaults to today"`
}

type OccurrencesResponseBody struct {
	Dates []string `json:"dates" doc:"Due dates not yet materialized, oldest first"`
}

type OccurrencesOutput struct {
	Body OccurrencesResponseBody
}

type occurrenceLister interface {
	Occurrences(ctx context.Context, ownerID, id uuid.UUID, asOf time.Time) ([]time.Time, error)
}

// OccurrencesHandler handles GET /v1/transactions/{id}/occurrences.
type OccurrencesHandler struct {
	TransactionService occurrenceLister
	Now                func() time.Time
}

func NewOccurrencesHandler(svc occurrenceLister) *OccurrencesHandler {
	return &OccurrencesHandler{TransactionService: svc, Now: time.Now}
}

func (h *OccurrencesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transaction-occurrences",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{id}/occurrences",
		Summary:     "List due occurrences",
		Description: "Lists the dates a recurring transaction has fallen due since its last materialized occurrence.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *OccurrencesHandler) handle(ctx context.Context, input *OccurrencesInput) (*OccurrencesOutput, error) {
	ownerID, id, err := parseTransactionIDInput(&TransactionIDInput{OwnerID: input.OwnerID, ID: input.ID})
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

	dates, err := h.TransactionService.Occurrences(ctx, ownerID, id, asOf)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to list occurrences")
	}

	resp := OccurrencesResponseBody{Dates: make([]string, len(dates))}
	for i, d := range dates {
		resp.Dates[i] = apiutil.FormatDate(d)
	}
	return &OccurrencesOutput{Body: resp}, nil
}
