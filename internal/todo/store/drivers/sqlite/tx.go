package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stackleaf/todo/internal/todo/store"
)

// txStore adapts an open *sql.Tx to the store.Tx interface. Repositories
// obtained from it run inside the transaction.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) store.Tx {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users { return &usersRepo{db: t.tx} }
func (t *txStore) Todos() store.Todos { return &todosRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Nested transactions are actively disallowed; start them from the root Store.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: cannot migrate inside a transaction")
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }
