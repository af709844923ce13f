// Package storage defines the tables the services read from and the Writer the
// operator mutates them through. Backends live in subpackages.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would break a uniqueness rule, such as
	// a second default account for one owner.
	ErrConflict = errors.New("conflicting record")
)

// Backend is implemented by each storage engine.
type Backend interface {
	Tables() Tables
	Begin(ctx context.Context) (*Writer, error)
	Close() error
}

// Storage is the entry point for reads and for opening writers.
type Storage struct {
	Tables
	backend Backend
}

func New(backend Backend) *Storage {
	return &Storage{
		Tables:  backend.Tables(),
		backend: backend,
	}
}

// Write opens a Writer bound to a single storage transaction. The caller must
// Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.backend.Begin(ctx)
}

func (s *Storage) Close() error {
	return s.backend.Close()
}
