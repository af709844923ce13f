package retirement

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// SaveGoalBody lists the goal fields. Any field left out takes its default.
type SaveGoalBody struct {
	CurrentAge              *int   `json:"currentAge,omitempty" minimum:"0" maximum:"150" doc:"Defaults to 25"`
	RetirementAge           *int   `json:"retirementAge,omitempty" minimum:"0" maximum:"150" doc:"Defaults to 60"`
	LifeExpectancy          *int   `json:"lifeExpectancy,omitempty" minimum:"0" maximum:"150" doc:"Defaults to 85"`
	CurrentSavings          string `json:"currentSavings,omitempty" doc:"Decimal, defaults to 0"`
	MonthlyContribution     string `json:"monthlyContribution,omitempty" doc:"Decimal, defaults to 5000"`
	ExpectedAnnualReturnPct string `json:"expectedAnnualReturnPct,omitempty" doc:"Percent, defaults to 7"`
	InflationRatePct        string `json:"inflationRatePct,omitempty" doc:"Percent, defaults to 4"`
	DesiredMonthlyIncome    string `json:"desiredMonthlyIncome,omitempty" doc:"Decimal, defaults to 40000"`
}

type SaveGoalInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
	Body    SaveGoalBody
}

// SaveGoalOutput answers 201 when the goal is new and 200 when it replaced one.
type SaveGoalOutput struct {
	Status int
	Body   Goal
}

type goalSaver interface {
	SaveGoal(ctx context.Context, goal ledger.RetirementGoal) (bool, error)
}

// SaveGoalHandler handles PUT /v1/retirement.
type SaveGoalHandler struct {
	RetirementService goalSaver
}

func NewSaveGoalHandler(svc goalSaver) *SaveGoalHandler {
	return &SaveGoalHandler{RetirementService: svc}
}

func (h *SaveGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "save-retirement-goal",
		Method:      http.MethodPut,
		Path:        "/v1/retirement",
		Summary:     "Save retirement goal",
		Description: "Creates or replaces the caller's only retirement goal.",
		Tags:        []string{"Retirement"},
	}, h.handle)
}

func parseSaveGoalInput(input *SaveGoalInput) (ledger.RetirementGoal, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return ledger.RetirementGoal{}, err
	}

	body := input.Body
	var opts []ledger.GoalOption
	if body.CurrentAge != nil {
		opts = append(opts, ledger.WithCurrentAge(*body.CurrentAge))
	}
	if body.RetirementAge != nil {
		opts = append(opts, ledger.WithRetirementAge(*body.RetirementAge))
	}
	if body.LifeExpectancy != nil {
		opts = append(opts, ledger.WithLifeExpectancy(*body.LifeExpectancy))
	}

	for _, field := range []struct {
		name  string
		raw   string
		apply func(decimal.Decimal) ledger.GoalOption
	}{
		{"currentSavings", body.CurrentSavings, ledger.WithCurrentSavings},
		{"monthlyContribution", body.MonthlyContribution, ledger.WithMonthlyContribution},
		{"expectedAnnualReturnPct", body.ExpectedAnnualReturnPct, ledger.WithExpectedAnnualReturnPct},
		{"inflationRatePct", body.InflationRatePct, ledger.WithInflationRatePct},
		{"desiredMonthlyIncome", body.DesiredMonthlyIncome, ledger.WithDesiredMonthlyIncome},
	} {
		if field.raw == "" {
			continue
		}
		v, err := apiutil.ParseDecimal(field.raw, field.name)
		if err != nil {
			return ledger.RetirementGoal{}, err
		}
		opts = append(opts, field.apply(v))
	}

	return ledger.NewRetirementGoal(ownerID, opts...), nil
}

func (h *SaveGoalHandler) handle(ctx context.Context, input *SaveGoalInput) (*SaveGoalOutput, error) {
	goal, err := parseSaveGoalInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.RetirementService.SaveGoal(ctx, goal)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to save retirement goal")
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return &SaveGoalOutput{Status: status, Body: fromGoal(goal)}, nil
}
