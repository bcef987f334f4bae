package store

import (
	"context"
	"errors"
	"time"

	"github.com/republichq/republic/internal/republic/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrNestedTx      = errors.New("store: nested transactions are not supported")
)

// Repos exposes the per-table repositories. Every handle (Store, Conn, Tx)
// offers the same set so services do not care which one they were given.
type Repos interface {
	Users() Users
	ResetTokens() ResetTokens
	Clicks() Clicks
}

// Querier is what services work against: repositories plus transactions.
type Querier interface {
	Repos

	// WithTx runs fn in a transaction. It commits when fn returns nil and
	// rolls back otherwise, including when fn panics. fn must use tx and not
	// the handle WithTx was called on.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Store is the root data access interface. The sqlite and postgres drivers
// implement it; app picks one at startup.
type Store interface {
	Querier

	// Conn pins one pooled connection. The caller must Close it.
	Conn(ctx context.Context) (Conn, error)

	// EnsureSchema creates the tables and seed rows if missing. Safe to run
	// on every start.
	EnsureSchema(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

// Conn is a Querier bound to a single connection.
type Conn interface {
	Querier
	Close() error
}

// Tx is a transaction-scoped set of repositories. Commit and rollback are
// owned by WithTx.
type Tx interface {
	Repos
}

type Users interface {
	// Create inserts u and returns the generated id. A taken email yields
	// ErrAlreadyExists.
	Create(ctx context.Context, u domain.NewUser) (int64, error)

	GetByID(ctx context.Context, id int64) (domain.User, error)

	// GetByEmail matches the email exactly, case included.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile overwrites name, email, password hash and phone.
	UpdateProfile(ctx context.Context, id int64, p domain.ProfileUpdate) error

	UpdatePasswordHash(ctx context.Context, id int64, hash string) error

	// RequestDeletion flags the account; nothing is removed.
	RequestDeletion(ctx context.Context, id int64) error
}

type ResetTokens interface {
	Create(ctx context.Context, t domain.ResetToken) (int64, error)

	GetByFingerprint(ctx context.Context, fingerprint string) (domain.ResetToken, error)

	// DeleteByFingerprint returns the number of rows removed (0 or 1).
	DeleteByFingerprint(ctx context.Context, fingerprint string) (int64, error)

	// DeleteExpired removes tokens with expiration <= now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Clicks interface {
	// Increment adds one to eventName, creating the row at 1 if absent, in
	// a single statement.
	Increment(ctx context.Context, eventName string) error

	Get(ctx context.Context, eventName string) (domain.ClickCount, error)

	List(ctx context.Context) ([]domain.ClickCount, error)
}
