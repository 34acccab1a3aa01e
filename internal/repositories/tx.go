package repositories

import (
	"database/sql"
	"fmt"
)

// TxManager runs a unit of work within a single database transaction. The
// function receives an SQLExecutor backed by the transaction; returning an
// error rolls back every mutation, otherwise the transaction is committed.
type TxManager interface {
	WithinTx(fn func(ex SQLExecutor) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager over a live connection pool.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) WithinTx(fn func(ex SQLExecutor) error) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
