// Package summary serves the dashboard aggregates of a caller's ledger.
package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

type SummaryInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	Start   string `query:"start" format:"date" doc:"First date to include, YYYY-MM-DD"`
	End     string `query:"end" format:"date" doc:"Last date to include, YYYY-MM-DD"`
	Range   string `query:"range" enum:"weekly,monthly,yearly" doc:"Trailing 7, 30 or 365 days ending today; excludes start and end"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total" doc:"Decimal expense total"`
}

type DailyTotal struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type SummaryResponseBody struct {
	Start      string          `json:"start,omitempty" doc:"Window start, absent when open"`
	End        string          `json:"end,omitempty" doc:"Window end, absent when open"`
	Count      int             `json:"count" doc:"Transactions inside the window"`
	Income     string          `json:"income"`
	Expense    string          `json:"expense"`
	Net        string          `json:"net" doc:"Income minus expense"`
	Categories []CategoryTotal `json:"categories" doc:"Expense totals per category, largest first"`
	Daily      []DailyTotal    `json:"daily" doc:"Totals per day, oldest first"`
}

type SummaryOutput struct {
	Body SummaryResponseBody
}

type summarizer interface {
	Summarize(ctx context.Context, ownerID uuid.UUID, window ledger.Window) (ledger.Summary, error)
}

// SummaryHandler handles GET /v1/summary.
type SummaryHandler struct {
	TransactionService summarizer
	Now                func() time.Time
}

func NewSummaryHandler(svc summarizer) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc, Now: time.Now}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary",
		Summary:     "Summarize ledger",
		Description: "Aggregates the caller's transactions over an inclusive date window or a trailing range.",
		Tags:        []string{"Summary"},
	}, h.handle)
}

// parseSummaryInput resolves the window. A range is measured back from now;
// explicit dates may leave either side open.
func parseSummaryInput(input *SummaryInput, now time.Time) (uuid.UUID, ledger.Window, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return uuid.Nil, ledger.Window{}, err
	}

	if input.Range != "" {
		if input.Start != "" || input.End != "" {
			return uuid.Nil, ledger.Window{}, huma.NewError(http.StatusBadRequest, "range cannot be combined with start or end")
		}
		window, err := ledger.TrailingWindow(now, ledger.Range(input.Range))
		if err != nil {
			return uuid.Nil, ledger.Window{}, huma.NewError(http.StatusBadRequest, "invalid range", err)
		}
		return ownerID, window, nil
	}

	var window ledger.Window
	if window.Start, err = apiutil.ParseDate(input.Start, "start"); err != nil {
		return uuid.Nil, ledger.Window{}, err
	}
	if window.End, err = apiutil.ParseDate(input.End, "end"); err != nil {
		return uuid.Nil, ledger.Window{}, err
	}
	return ownerID, window, nil
}

func (h *SummaryHandler) handle(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	ownerID, window, err := parseSummaryInput(input, h.Now())
	if err != nil {
		return nil, err
	}

	summary, err := h.TransactionService.Summarize(ctx, ownerID, window)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to summarize transactions")
	}
	return &SummaryOutput{Body: toResponse(summary)}, nil
}

func toResponse(s ledger.Summary) SummaryResponseBody {
	resp := SummaryResponseBody{
		Start:      apiutil.FormatDate(s.Window.Start),
		End:        apiutil.FormatDate(s.Window.End),
		Count:      s.Count,
		Income:     s.TotalsByKind.Income.String(),
		Expense:    s.TotalsByKind.Expense.String(),
		Net:        s.Net.String(),
		Categories: make([]CategoryTotal, len(s.TotalsByCategory)),
		Daily:      make([]DailyTotal, len(s.DailyBreakdown)),
	}
	for i, c := range s.TotalsByCategory {
		resp.Categories[i] = CategoryTotal{Category: c.Category, Total: c.Total.String()}
	}
	for i, d := range s.DailyBreakdown {
		resp.Daily[i] = DailyTotal{
			Date:    apiutil.FormatDate(d.Date),
			Income:  d.IncomeTotal.String(),
			Expense: d.ExpenseTotal.String(),
		}
	}
	return resp
}
