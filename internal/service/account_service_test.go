package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

func (f *fixture) account(t *testing.T, owner uuid.UUID, name string, isDefault bool) *ledger.AccountRecord {
	t.Helper()
	created, err := f.svc.Account.CreateAccount(context.Background(), ledger.AccountRecord{
		OwnerID:   owner,
		Name:      name,
		Kind:      ledger.AccountSavings,
		IsDefault: isDefault,
	})
	require.NoError(t, err)
	return created
}

func TestCreateAccount_FirstIsDefault(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())

	first := f.account(t, owner, "Main", false)
	second := f.account(t, owner, "Spare", false)

	assert.True(t, first.IsDefault)
	assert.False(t, second.IsDefault)
}

func TestCreateAccount_Invalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Account.CreateAccount(context.Background(), ledger.AccountRecord{
		OwnerID: uuid.Must(uuid.NewV4()),
		Name:    "Broker",
		Kind:    "Brokerage",
	})

	assert.ErrorIs(t, err, ledger.ErrInvalidAccountKind)
}

func TestGetAccount_OtherOwner(t *testing.T) {
	f := newFixture(t)
	created := f.account(t, uuid.Must(uuid.NewV4()), "Main", false)

	_, err := f.svc.Account.GetAccount(context.Background(), uuid.Must(uuid.NewV4()), created.ID)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListAccounts_Pages(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())
	for _, name := range []string{"Delta", "Alpha", "Charlie", "Bravo"} {
		f.account(t, owner, name, false)
	}
	f.account(t, uuid.Must(uuid.NewV4()), "Other", false)

	page, next, err := f.svc.Account.ListAccounts(context.Background(), owner, &AccountCursor{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "Alpha", page[0].Name)
	require.NotNil(t, next)

	page, next, err = f.svc.Account.ListAccounts(context.Background(), owner, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Delta", page[0].Name)
	assert.Nil(t, next)
}

func TestUpdateAccount_KeepsDefault(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())
	created := f.account(t, owner, "Main", false)

	changed := *created
	changed.Name = "Household"
	changed.IsDefault = false
	updated, err := f.svc.Account.UpdateAccount(context.Background(), changed)

	require.NoError(t, err)
	assert.Equal(t, "Household", updated.Name)
	assert.True(t, updated.IsDefault)
}

func TestSetDefaultAccount(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())
	first := f.account(t, owner, "Main", false)
	second := f.account(t, owner, "Spare", false)

	got, err := f.svc.Account.SetDefaultAccount(context.Background(), owner, second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)

	previous, err := f.svc.Account.GetAccount(context.Background(), owner, first.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsDefault)
}

func TestDeleteAccount_PromotesNextDefault(t *testing.T) {
	f := newFixture(t)
	owner := uuid.Must(uuid.NewV4())
	primary := f.account(t, owner, "Main", false)
	f.account(t, owner, "Zeta", false)
	f.account(t, owner, "Beta", false)

	require.NoError(t, f.svc.Account.DeleteAccount(context.Background(), owner, primary.ID))

	page, _, err := f.svc.Account.ListAccounts(context.Background(), owner, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Beta", page[0].Name)
	assert.True(t, page[0].IsDefault)
	assert.False(t, page[1].IsDefault)
}

func TestTransactionsMoveAccountBalance(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("Publish", mockAny, mockAny).Return(nil)
	owner := uuid.Must(uuid.NewV4())
	acct := f.account(t, owner, "Main", false)

	income := txn(owner, ledger.KindIncome, "Salary", "1000", day(2024, 3, 1))
	income.AccountID = &acct.ID
	f.create(t, income)
	expense := txn(owner, ledger.KindExpense, "Rent", "400.50", day(2024, 3, 2))
	expense.AccountID = &acct.ID
	spent := f.create(t, expense)

	got, err := f.svc.Account.GetAccount(context.Background(), owner, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "599.5", got.Balance.String())

	require.NoError(t, f.svc.Transaction.DeleteTransaction(context.Background(), owner, spent.ID))
	got, err = f.svc.Account.GetAccount(context.Background(), owner, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000", got.Balance.String())
}
