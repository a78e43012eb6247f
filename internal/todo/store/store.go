package store

import (
	"context"
	"errors"
	"time"

	"github.com/stackleaf/todo/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Todos() Todos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByIdentifier looks a user up by username OR email in a single
	// query; login uses this for its undifferentiated lookup.
	GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// GetUserByRefreshToken returns the user whose stored refresh slot
	// matches the given fingerprint exactly.
	GetUserByRefreshToken(ctx context.Context, fingerprint string) (domain.User, error)

	// UsernameExists and EmailExists are the two sequential registration
	// checks; the UNIQUE constraints below them are defense in depth.
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when a uniqueness constraint trips.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateRefreshToken overwrites the user's refresh slot and bumps
	// updated_at. Last write wins under concurrent logins.
	UpdateRefreshToken(ctx context.Context, userID, fingerprint string, expiresAt time.Time) error

	// ClearExpiredRefreshTokens nulls out refresh slots whose expiry has
	// passed. Housekeeping only; expired tokens already fail verification.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Todos interface {
	// CreateTodo inserts a new todo (id is provided by app via ULID).
	CreateTodo(ctx context.Context, t domain.Todo) error

	// GetTodoByID returns a todo only if it belongs to userID.
	GetTodoByID(ctx context.Context, id, userID string) (domain.Todo, error)

	// ListTodos returns all todos owned by userID, newest first.
	ListTodos(ctx context.Context, userID string) ([]domain.Todo, error)

	// ListTodosFiltered narrows the listing by completion and/or type.
	ListTodosFiltered(ctx context.Context, userID string, f domain.TodoFilter) ([]domain.Todo, error)

	// UpdateTodo replaces title, description and type.
	UpdateTodo(ctx context.Context, t domain.Todo) error

	// PatchTodo applies only the non-nil fields of the patch.
	PatchTodo(ctx context.Context, id, userID string, p domain.TodoPatch) error

	// DeleteTodo removes a todo owned by userID.
	DeleteTodo(ctx context.Context, id, userID string) error
}
