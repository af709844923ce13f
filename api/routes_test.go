package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/account"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/summary"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/fintrack-server/internal/operator"
	"github.com/carson-networks/fintrack-server/internal/service"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/memory"
)

func newServer(t *testing.T) (*httptest.Server, *operator.OperatorDelegator, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	store := storage.New(memory.New())
	op := operator.NewOperatorDelegator(store, logger, 2)
	op.Start()
	t.Cleanup(op.Stop)

	rest := &Rest{
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:5173"},
		Service:        service.NewService(store, op, events.Nop{}, logger),
		Operator:       op,
	}
	srv := httptest.NewServer(rest.Router())
	t.Cleanup(srv.Close)
	return srv, op, hook
}

func do(t *testing.T, srv *httptest.Server, method, path string, owner uuid.UUID, body any, out any) int {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, &reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", owner.String())

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestStatus(t *testing.T) {
	srv, op, _ := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	op.Stop()
	resp, err = srv.Client().Get(srv.URL + "/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/transactions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-User-ID")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestLedgerFlow(t *testing.T) {
	srv, _, hook := newServer(t)
	owner := uuid.Must(uuid.NewV4())

	var acct account.Account
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/accounts", owner,
		account.CreateAccountBody{Name: "Main", Kind: "Savings"}, &acct))
	assert.True(t, acct.IsDefault)

	for _, body := range []transaction.TransactionBody{
		{AccountID: acct.ID, Amount: "500", Category: "Salary", Kind: "Income", PaymentMethod: "Cash", Date: "2024-03-01"},
		{AccountID: acct.ID, Amount: "100", Category: "Groceries", Kind: "Expense", PaymentMethod: "GPay", Date: "2024-03-05"},
		{AccountID: acct.ID, Amount: "50", Category: "Groceries", Kind: "Expense", PaymentMethod: "GPay", Date: "2024-03-06"},
	} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/transactions", owner, body, nil))
	}

	var got account.Account
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/v1/accounts/"+acct.ID, owner, nil, &got))
	assert.Equal(t, "350", got.Balance)

	var s summary.SummaryResponseBody
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/v1/summary?start=2024-03-01&end=2024-03-31", owner, nil, &s))
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "350", s.Net)
	assert.Equal(t, []summary.CategoryTotal{{Category: "Groceries", Total: "150"}}, s.Categories)

	// another owner sees nothing of it
	stranger := uuid.Must(uuid.NewV4())
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/v1/accounts/"+acct.ID, stranger, nil, nil))

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Handler.get-summary.Complete" {
			found = true
		}
	}
	assert.True(t, found, "huma middleware logs each operation")
}

func TestRecurringFlow(t *testing.T) {
	srv, _, _ := newServer(t)
	owner := uuid.Must(uuid.NewV4())

	var rent transaction.Transaction
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/transactions", owner, transaction.TransactionBody{
		Amount: "1200", Category: "Rent", Kind: "Expense", PaymentMethod: "CreditCard", Date: "2024-01-31",
		IsRecurring: true, RecurrenceInterval: "monthly",
	}, &rent))

	var due transaction.OccurrencesResponseBody
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/v1/transactions/"+rent.ID+"/occurrences?asOf=2024-03-01", owner, nil, &due))
	assert.Equal(t, []string{"2024-02-29"}, due.Dates)

	for _, want := range []int{1, 0} {
		var out struct {
			Materialized []transaction.Transaction `json:"materialized"`
		}
		require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/v1/recurring/process?asOf=2024-03-01", owner, nil, &out))
		assert.Len(t, out.Materialized, want)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	srv, _, _ := newServer(t)
	owner := uuid.Must(uuid.NewV4())
	base := transaction.TransactionBody{
		Amount: "10.50", Category: "Food", Kind: "Expense", PaymentMethod: "Cash", Date: "2024-03-01",
	}

	subCent := base
	subCent.Amount = "10.005"
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/v1/transactions", owner, subCent, nil))

	accented := base
	accented.Notes = strings.Repeat("é", 300)
	var created transaction.Transaction
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/v1/transactions", owner, accented, &created))
	assert.Equal(t, accented.Notes, created.Notes)
}
