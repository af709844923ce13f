// Package events publishes ledger changes to a message broker so other
// services can react to them.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/ledger"
)

type Type string

const (
	TransactionCreated      Type = "transaction.created"
	TransactionMaterialized Type = "transaction.materialized"
	TransactionDeleted      Type = "transaction.deleted"
)

// Event is the message body. Its Type doubles as the routing key.
type Event struct {
	ID            uuid.UUID       `json:"id"`
	Type          Type            `json:"type"`
	OwnerID       uuid.UUID       `json:"ownerID"`
	TransactionID uuid.UUID       `json:"transactionID"`
	AccountID     *uuid.UUID      `json:"accountID,omitempty"`
	RecurrenceOf  *uuid.UUID      `json:"recurrenceOf,omitempty"`
	Kind          ledger.Kind     `json:"kind,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredOn    string          `json:"occurredOn,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

func NewTransactionEvent(eventType Type, tx ledger.TransactionRecord) Event {
	return Event{
		ID:            uuid.Must(uuid.NewV4()),
		Type:          eventType,
		OwnerID:       tx.OwnerID,
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		RecurrenceOf:  tx.RecurrenceOf,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		OccurredOn:    tx.OccurredOn.Format(time.DateOnly),
		Timestamp:     time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }
