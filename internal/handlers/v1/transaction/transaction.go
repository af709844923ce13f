package transaction

import (
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                 string  `json:"id" doc:"Transaction UUID"`
	AccountID          *string `json:"accountID,omitempty" doc:"Linked account UUID"`
	Amount             string  `json:"amount" doc:"Decimal amount"`
	Category           string  `json:"category" doc:"Category label"`
	Kind               string  `json:"kind" doc:"Income or Expense"`
	PaymentMethod      string  `json:"paymentMethod" doc:"Cash, GPay, PhonePe or CreditCard"`
	Date               string  `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	IsRecurring        bool    `json:"isRecurring" doc:"Whether this is a recurring template"`
	RecurrenceInterval string  `json:"recurrenceInterval" doc:"none, weekly, monthly or yearly"`
	NextOccurrence     string  `json:"nextOccurrence,omitempty" doc:"Last materialized occurrence, YYYY-MM-DD"`
	Notes              string  `json:"notes" doc:"Free text"`
	RecurrenceOf       *string `json:"recurrenceOf,omitempty" doc:"Template UUID this entry was materialized from"`
}

// FromRecord builds the response model of tx.
func FromRecord(tx ledger.TransactionRecord) Transaction {
	return Transaction{
		ID:                 tx.ID.String(),
		AccountID:          apiutil.FormatOptionalUUID(tx.AccountID),
		Amount:             tx.Amount.String(),
		Category:           tx.Category,
		Kind:               string(tx.Kind),
		PaymentMethod:      string(tx.PaymentMethod),
		Date:               apiutil.FormatDate(tx.OccurredOn),
		IsRecurring:        tx.IsRecurring,
		RecurrenceInterval: string(tx.RecurrenceInterval),
		NextOccurrence:     apiutil.FormatDate(tx.NextOccurrence),
		Notes:              tx.Notes,
		RecurrenceOf:       apiutil.FormatOptionalUUID(tx.RecurrenceOf),
	}
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	AccountID          string `json:"accountID,omitempty" format:"uuid" doc:"Account UUID to book against"`
	Amount             string `json:"amount" required:"true" doc:"Non-negative decimal amount"`
	Category           string `json:"category" required:"true" minLength:"1" maxLength:"100" doc:"Category label"`
	Kind               string `json:"kind" required:"true" enum:"Income,Expense" doc:"Transaction kind"`
	PaymentMethod      string `json:"paymentMethod" required:"true" enum:"Cash,GPay,PhonePe,CreditCard" doc:"Payment method"`
	Date               string `json:"date" required:"true" format:"date" doc:"Calendar date, YYYY-MM-DD"`
	IsRecurring        bool   `json:"isRecurring,omitempty" doc:"Repeat this transaction"`
	RecurrenceInterval string `json:"recurrenceInterval,omitempty" enum:"none,weekly,monthly,yearly" doc:"Required when isRecurring is set"`
	Notes              string `json:"notes,omitempty" maxLength:"500" doc:"Free text"`
}

// parseTransactionBody turns a request body into a record owned by ownerID.
// Domain rules are left to the service.
func parseTransactionBody(ownerID uuid.UUID, body TransactionBody) (ledger.TransactionRecord, error) {
	accountID, err := apiutil.ParseOptionalUUID(body.AccountID, "accountID")
	if err != nil {
		return ledger.TransactionRecord{}, err
	}
	amount, err := apiutil.ParseDecimal(body.Amount, "amount")
	if err != nil {
		return ledger.TransactionRecord{}, err
	}
	occurredOn, err := apiutil.ParseDate(body.Date, "date")
	if err != nil {
		return ledger.TransactionRecord{}, err
	}

	return ledger.TransactionRecord{
		OwnerID:            ownerID,
		AccountID:          accountID,
		Amount:             amount,
		Category:           body.Category,
		Kind:               ledger.Kind(body.Kind),
		PaymentMethod:      ledger.PaymentMethod(body.PaymentMethod),
		OccurredOn:         occurredOn,
		IsRecurring:        body.IsRecurring,
		RecurrenceInterval: ledger.Interval(body.RecurrenceInterval),
		Notes:              body.Notes,
	}, nil
}
