package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

type RetirementService struct {
	storage  *storage.Storage
	operator Processor
}

func NewRetirementService(store *storage.Storage, op Processor) *RetirementService {
	return &RetirementService{storage: store, operator: op}
}

// SaveGoal creates or replaces the owner's goal and reports whether it was new.
func (s *RetirementService) SaveGoal(ctx context.Context, goal ledger.RetirementGoal) (bool, error) {
	action := &actions.UpsertRetirementGoal{Goal: goal}
	if err := s.operator.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Created, nil
}

func (s *RetirementService) GetGoal(ctx context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, error) {
	return s.storage.Goals.FindByOwner(ctx, ownerID)
}

func (s *RetirementService) DeleteGoal(ctx context.Context, ownerID uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteRetirementGoal{OwnerID: ownerID})
}

// Project runs the projection over the owner's stored goal.
func (s *RetirementService) Project(ctx context.Context, ownerID uuid.UUID) (*ledger.RetirementGoal, ledger.Projection, error) {
	goal, err := s.GetGoal(ctx, ownerID)
	if err != nil {
		return nil, ledger.Projection{}, err
	}
	projection, err := ledger.Project(*goal)
	if err != nil {
		return nil, ledger.Projection{}, err
	}
	return goal, projection, nil
}
