package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Transaction is a started database transaction. Commit and Rollback are
// idempotent, so callers can defer a Rollback unconditionally and still
// Commit on the success path.
type Transaction struct {
	tx       *gorm.DB
	finished bool
}

// NewTransaction begins a transaction on a fresh session.
func NewTransaction(ctx context.Context, db Database) (Transaction, error) {
	tx := db.Session(ctx).Begin()
	if tx.Error != nil {
		return Transaction{}, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return Transaction{tx: tx}, nil
}

// Session returns the transactional session. Queries executed on it are
// part of the transaction.
func (t Transaction) Session() *gorm.DB { return t.tx }

// Commit commits the transaction. It is a no-op once the transaction has
// been committed or rolled back.
func (t *Transaction) Commit() error {
	return t.finish("commit", t.tx.Commit)
}

// Rollback discards the transaction. It is a no-op once the transaction
// has been committed or rolled back.
func (t *Transaction) Rollback() error {
	return t.finish("rollback", t.tx.Rollback)
}

func (t *Transaction) finish(op string, f func() *gorm.DB) error {
	if t.finished {
		return nil
	}
	if err := f().Error; err != nil {
		return fmt.Errorf("%s transaction: %w", op, err)
	}
	t.finished = true
	return nil
}

// WithTransaction runs fn inside a transaction. A nil return from fn
// commits, any error rolls back and is returned unchanged.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	txn, err := NewTransaction(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		if !txn.finished {
			_ = txn.Rollback()
		}
	}()

	if err := fn(txn.Session()); err != nil {
		return err
	}
	return txn.Commit()
}
