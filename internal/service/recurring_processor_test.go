package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fintrack-server/internal/events"
	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

var mockAny = mock.Anything

// failingProcessor rejects materialization of one template and passes
// everything else through.
type failingProcessor struct {
	next     Processor
	template uuid.UUID
}

func (p *failingProcessor) Process(ctx context.Context, action actions.IAction) error {
	if m, ok := action.(*actions.MaterializeRecurrence); ok && m.TemplateID == p.template {
		return errors.New("boom")
	}
	return p.next.Process(ctx, action)
}

func (f *fixture) recurringTemplate(t *testing.T, owner uuid.UUID, category string, start time.Time, interval ledger.Interval) *ledger.TransactionRecord {
	t.Helper()
	tx := txn(owner, ledger.KindExpense, category, "1200", start)
	tx.IsRecurring = true
	tx.RecurrenceInterval = interval
	return f.create(t, tx)
}

func TestProcessDue_MaterializesAndAdvances(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("Publish", mockAny, mockAny).Return(nil)
	owner := uuid.Must(uuid.NewV4())
	template := f.recurringTemplate(t, owner, "Rent", day(2024, 1, 31), ledger.IntervalMonthly)

	result, err := f.svc.Recurring.ProcessDue(context.Background(), day(2024, 4, 1), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Templates)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Materialized, 2)
	assert.Equal(t, day(2024, 2, 29), result.Materialized[0].OccurredOn)
	assert.Equal(t, day(2024, 3, 31), result.Materialized[1].OccurredOn)
	for _, instance := range result.Materialized {
		require.NotNil(t, instance.RecurrenceOf)
		assert.Equal(t, template.ID, *instance.RecurrenceOf)
	}

	stored, err := f.store.Transactions.FindByID(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 31), stored.NextOccurrence)

	f.publisher.AssertNumberOfCalls(t, "Publish", 3)
	f.publisher.AssertCalled(t, "Publish", mockAny, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TransactionMaterialized && e.OccurredOn == "2024-02-29"
	}))
}

func TestProcessDue_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("Publish", mockAny, mockAny).Return(nil)
	owner := uuid.Must(uuid.NewV4())
	f.recurringTemplate(t, owner, "Gym", day(2024, 1, 1), ledger.IntervalWeekly)

	first, err := f.svc.Recurring.ProcessDue(context.Background(), day(2024, 1, 29), &owner)
	require.NoError(t, err)
	second, err := f.svc.Recurring.ProcessDue(context.Background(), day(2024, 1, 29), &owner)
	require.NoError(t, err)

	assert.Len(t, first.Materialized, 4)
	assert.Empty(t, second.Materialized)

	all, err := f.store.Transactions.List(context.Background(), &storage.TransactionFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestProcessDue_OwnerScoped(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("Publish", mockAny, mockAny).Return(nil)
	alice := uuid.Must(uuid.NewV4())
	bob := uuid.Must(uuid.NewV4())
	f.recurringTemplate(t, alice, "Rent", day(2024, 1, 1), ledger.IntervalMonthly)
	f.recurringTemplate(t, bob, "Rent", day(2024, 1, 1), ledger.IntervalMonthly)

	result, err := f.svc.Recurring.ProcessDue(context.Background(), day(2024, 2, 1), &alice)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Templates)
	require.Len(t, result.Materialized, 1)
	assert.Equal(t, alice, result.Materialized[0].OwnerID)
}

func TestProcessDue_FailureContinues(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("Publish", mockAny, mockAny).Return(nil)
	owner := uuid.Must(uuid.NewV4())
	broken := f.recurringTemplate(t, owner, "Broken", day(2024, 1, 1), ledger.IntervalMonthly)
	f.recurringTemplate(t, owner, "Rent", day(2024, 1, 1), ledger.IntervalMonthly)

	processor := NewRecurringProcessor(f.store, &failingProcessor{next: f.svc.Recurring.operator, template: broken.ID}, f.publisher, f.svc.Recurring.logger)
	result, err := processor.ProcessDue(context.Background(), day(2024, 2, 1), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Templates)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Materialized, 1)
	assert.Equal(t, "Rent", result.Materialized[0].Category)

	var sawError bool
	for _, entry := range f.hook.AllEntries() {
		if entry.Message == "RecurringProcessor.Materialize.Error" {
			sawError = true
			assert.Equal(t, broken.ID, entry.Data["templateID"])
		}
	}
	assert.True(t, sawError)
}

func TestRun_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	f.publisher.On("Publish", mockAny, mockAny).Return(nil)
	owner := uuid.Must(uuid.NewV4())
	f.recurringTemplate(t, owner, "Rent", day(2024, 1, 1), ledger.IntervalMonthly)

	var calls atomic.Int32
	now := func() time.Time {
		calls.Add(1)
		return day(2024, 3, 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.svc.Recurring.Run(ctx, 10*time.Millisecond, now) }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	all, err := f.store.Transactions.List(context.Background(), &storage.TransactionFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Len(t, all, 3, "ticks after the first create nothing new")
}
