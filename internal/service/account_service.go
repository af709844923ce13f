package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator Processor
}

func NewAccountService(store *storage.Storage, op Processor) *AccountService {
	return &AccountService{storage: store, operator: op}
}

// CreateAccount creates a new account and returns it as stored.
func (s *AccountService) CreateAccount(ctx context.Context, account ledger.AccountRecord) (*ledger.AccountRecord, error) {
	action := &actions.CreateAccount{Record: account}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &action.Created, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.AccountRecord, error) {
	account, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.OwnerID != ownerID {
		return nil, fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
	}
	return account, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID, cursor *AccountCursor) ([]ledger.AccountRecord, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = min(cursor.Limit, maxLimit)
		}
		offset = cursor.Position
	}

	filter := &storage.AccountFilter{
		OwnerID: &ownerID,
		Limit:   limit,
		Offset:  offset,
	}

	var nextCursor *AccountCursor
	accounts, err := s.storage.Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(accounts) == 0 {
		return nil, nil, nil
	}

	if len(accounts) > limit {
		accounts = accounts[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return deref(accounts), nextCursor, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, account ledger.AccountRecord) (*ledger.AccountRecord, error) {
	action := &actions.UpdateAccount{Record: account}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &action.Updated, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteAccount{OwnerID: ownerID, ID: id})
}

func (s *AccountService) SetDefaultAccount(ctx context.Context, ownerID, id uuid.UUID) (*ledger.AccountRecord, error) {
	if err := s.operator.Process(ctx, &actions.SetDefaultAccount{OwnerID: ownerID, ID: id}); err != nil {
		return nil, err
	}
	return s.GetAccount(ctx, ownerID, id)
}
