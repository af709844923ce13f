package service

import (
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

// TransactionQuery narrows a transaction listing.
type TransactionQuery struct {
	Window        ledger.Window
	AccountID     *uuid.UUID
	RecurringOnly bool
}
