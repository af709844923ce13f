package retirement

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

type OwnerInput struct {
	OwnerID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller UUID"`
}

type GoalOutput struct {
	Body Goal
}

type goalService interface {
	GetGoal(ctx context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, error)
	DeleteGoal(ctx context.Context, ownerID uuid.UUID) error
}

// GoalHandler handles GET and DELETE /v1/retirement.
type GoalHandler struct {
	RetirementService goalService
}

func NewGoalHandler(svc goalService) *GoalHandler {
	return &GoalHandler{RetirementService: svc}
}

func (h *GoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-retirement-goal",
		Method:      http.MethodGet,
		Path:        "/v1/retirement",
		Summary:     "Get retirement goal",
		Tags:        []string{"Retirement"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "delete-retirement-goal",
		Method:      http.MethodDelete,
		Path:        "/v1/retirement",
		Summary:     "Delete retirement goal",
		Tags:        []string{"Retirement"},
	}, h.delete)
}

func (h *GoalHandler) get(ctx context.Context, input *OwnerInput) (*GoalOutput, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return nil, err
	}
	goal, err := h.RetirementService.GetGoal(ctx, ownerID)
	if err != nil {
		return nil, apiutil.ServiceError(err, "failed to get retirement goal")
	}
	return &GoalOutput{Body: fromGoal(*goal)}, nil
}

func (h *GoalHandler) delete(ctx context.Context, input *OwnerInput) (*struct{}, error) {
	ownerID, err := apiutil.ParseUUID(input.OwnerID, "X-User-ID")
	if err != nil {
		return nil, err
	}
	if err := h.RetirementService.DeleteGoal(ctx, ownerID); err != nil {
		return nil, apiutil.ServiceError(err, "failed to delete retirement goal")
	}
	return nil, nil
}
