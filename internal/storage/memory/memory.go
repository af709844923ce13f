// Package memory is a storage backend that keeps every table in process
// memory. A Writer works on a private copy of the committed state which
// replaces it on Commit, so readers never see a half-applied action.
package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/ledger"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

var errTxDone = errors.New("memory: transaction already finished")

type state struct {
	transactions map[uuid.UUID]ledger.TransactionRecord
	accounts     map[uuid.UUID]ledger.AccountRecord
	goals        map[uuid.UUID]ledger.RetirementGoal
}

func newState() *state {
	return &state{
		transactions: make(map[uuid.UUID]ledger.TransactionRecord),
		accounts:     make(map[uuid.UUID]ledger.AccountRecord),
		goals:        make(map[uuid.UUID]ledger.RetirementGoal),
	}
}

func (s *state) clone() *state {
	return &state{
		transactions: maps.Clone(s.transactions),
		accounts:     maps.Clone(s.accounts),
		goals:        maps.Clone(s.goals),
	}
}

// Store holds the committed state. Only one writer is open at a time.
type Store struct {
	mu        sync.RWMutex
	committed *state
	writeSem  chan struct{}
}

var _ storage.Backend = (*Store)(nil)

func New() *Store {
	return &Store{
		committed: newState(),
		writeSem:  make(chan struct{}, 1),
	}
}

// Tables reads the committed state. Writes through these tables commit
// immediately, one at a time.
func (s *Store) Tables() storage.Tables {
	return tablesFor(committedView{s: s})
}

// Begin waits for any other writer to finish, then returns a Writer over a
// private copy of the committed state.
func (s *Store) Begin(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.writeSem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()

	t := &txn{store: s, staged: staged}
	return storage.NewWriter(tablesFor(stagedView{st: staged}), t), nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) publish(st *state) {
	s.mu.Lock()
	s.committed = st
	s.mu.Unlock()
}

type txn struct {
	store  *Store
	staged *state
	done   bool
}

func (t *txn) Commit(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.store.publish(t.staged)
	<-t.store.writeSem
	return nil
}

func (t *txn) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	<-t.store.writeSem
	return nil
}

// view abstracts over where a table reads and writes.
type view interface {
	read(fn func(*state))
	write(fn func(*state) error) error
}

type committedView struct {
	s *Store
}

func (v committedView) read(fn func(*state)) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.committed)
}

func (v committedView) write(fn func(*state) error) error {
	v.s.writeSem <- struct{}{}
	defer func() { <-v.s.writeSem }()

	v.s.mu.RLock()
	staged := v.s.committed.clone()
	v.s.mu.RUnlock()

	if err := fn(staged); err != nil {
		return err
	}
	v.s.publish(staged)
	return nil
}

type stagedView struct {
	st *state
}

func (v stagedView) read(fn func(*state)) {
	fn(v.st)
}

func (v stagedView) write(fn func(*state) error) error {
	return fn(v.st)
}

func tablesFor(v view) storage.Tables {
	return storage.Tables{
		Transactions: &transactionTable{v: v},
		Accounts:     &accountTable{v: v},
		Goals:        &goalTable{v: v},
	}
}

func newID() (uuid.UUID, error) {
	return uuid.NewV4()
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func window[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows
}
