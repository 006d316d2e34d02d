package database

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// Scope is a unit of work. Every repository call made with the same Scope
// commits or rolls back together; repositories never open transactions of
// their own.
//
//	s, err := db.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer s.Rollback()
//	// ... repository calls ...
//	return s.Commit()
type Scope struct {
	tx   *gorm.DB
	done bool
}

// Begin takes a connection from the pool and opens a transaction on it.
// It blocks while the pool is exhausted, until ctx is done.
func (d *Database) Begin(ctx context.Context) (*Scope, error) {
	tx := d.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, classify(tx.Error)
	}
	return &Scope{tx: tx}, nil
}

// InTx runs fn in a fresh scope and commits when fn returns nil.
func (d *Database) InTx(ctx context.Context, fn func(s *Scope) error) error {
	s, err := d.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback()

	if err := fn(s); err != nil {
		return err
	}
	return s.Commit()
}

// Tx exposes the underlying transaction to repository implementations.
func (s *Scope) Tx() *gorm.DB {
	return s.tx
}

func (s *Scope) Commit() error {
	if s.done {
		return ErrScopeClosed
	}
	s.done = true
	return classify(s.tx.Commit().Error)
}

// Rollback discards the scope's changes. It is a no-op once the scope has
// been committed or rolled back, so it is safe to defer.
func (s *Scope) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	err := s.tx.Rollback().Error
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return classify(err)
}
