package retirement

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/logging"
)

type YearBalance struct {
	Year          int    `json:"year"`
	Age           int    `json:"age"`
	Contributions string `json:"contributions"`
	Growth        string `json:"growth"`
	Balance       string `json:"balance"`
}

type Compounding struct {
	Years                  []YearBalance `json:"years" doc:"Balance at the end of each year until retirement"`
	FinalBalance           string        `json:"finalBalance"`
	InflationAdjustedNeeds string        `json:"inflationAdjustedNeeds" doc:"Total needs in retirement-year money"`
	Shortfall              string        `json:"shortfall" doc:"Inflation-adjusted needs not covered, 0 when funded"`
}

type ProjectionResponseBody struct {
	Goal                  Goal        `json:"goal"`
	YearsToRetirement     int         `json:"yearsToRetirement"`
	RetirementYears       int         `json:"retirementYears"`
	EstimatedTotalNeeds   string      `json:"estimatedTotalNeeds" doc:"25 years of desired income"`
	AnnualSavingsRequired string      `json:"annualSavingsRequired" doc:"Negative when current savings already exceed needs"`
	SimpleFundProjection  string      `json:"simpleFundProjection" doc:"Savings plus contributions without growth"`
	Compounding           Compounding `json:"compounding"`
}

type ProjectionOutput struct {
	Body ProjectionResponseBody
}

type projector interface {
	Project(ctx context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, ledger.Projection, error)
}

// ProjectionHandler handles GET /v1/retirement/projection.
type ProjectionHandler struct {
	RetirementService projector
}

func NewProjectionHandler(svc projector) *ProjectionHandler {
	return &ProjectionHandler{RetirementService: svc}
}

func (h *ProjectionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-retirement-projection",
		Method:      http.MethodGet,
		Path:        "/v1/retirement/projection",
		Summary:     "Project retirement goal",
		Description: "Projects the caller's stored goal, with and without compounding.",
		Tags:        []string{"Retirement"},
	}, h.handle)
}

func (h *ProjectionHandler) handle(ctx context.Context, input *OwnerInput) (*ProjectionOutput, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return nil, err
	}

	goal, p, err := h.RetirementService.Project(ctx, ownerID)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to project retirement goal")
	}
	logging.Add(ctx, "yearsToRetirement", p.YearsToRetirement)

	resp := ProjectionResponseBody{
		Goal:                  fromGoal(*goal),
		YearsToRetirement:     p.YearsToRetirement,
		RetirementYears:       p.RetirementYears,
		EstimatedTotalNeeds:   p.EstimatedTotalNeeds.String(),
		AnnualSavingsRequired: p.AnnualSavingsRequired.String(),
		SimpleFundProjection:  p.SimpleFundProjection.String(),
		Compounding: Compounding{
			Years:                  make([]YearBalance, len(p.Compounding.Years)),
			FinalBalance:           p.Compounding.FinalBalance.String(),
			InflationAdjustedNeeds: p.Compounding.InflationAdjustedNeeds.String(),
			Shortfall:              p.Compounding.Shortfall.String(),
		},
	}
	for i, y := range p.Compounding.Years {
		resp.Compounding.Years[i] = YearBalance{
			Year:          y.Year,
			Age:           y.Age,
			Contributions: y.Contributions.String(),
			Growth:        y.Growth.String(),
			Balance:       y.Balance.String(),
		}
	}
	return &ProjectionOutput{Body: resp}, nil
}
