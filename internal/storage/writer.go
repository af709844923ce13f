package storage

import (
	"context"
)

// Tx is the transaction handle a backend hands to its Writer.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Writer struct {
	Tables
	tx Tx
}

func NewWriter(tables Tables, tx Tx) *Writer {
	return &Writer{
		Tables: tables,
		tx:     tx,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
