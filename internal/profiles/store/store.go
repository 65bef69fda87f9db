package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by each driver.
// Repositories hang off it so that a Tx exposes exactly the same surface.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Accounts persists domain.Account rows. Timestamps are never filled in by
// the store; callers set DateJoined, UpdatedAt and LastLogin explicitly.
type Accounts interface {
	// Insert stores a new account. A second account with the same email, in
	// any letter case, fails with ErrAlreadyExists.
	Insert(ctx context.Context, a domain.Account) error

	// FindByEmail looks up an account by its canonical email.
	FindByEmail(ctx context.Context, email string) (domain.Account, error)

	FindByID(ctx context.Context, id string) (domain.Account, error)

	// Update writes every mutable column of a. Email and DateJoined are left
	// untouched. Returns ErrNotFound when no row has a.ID.
	Update(ctx context.Context, a domain.Account) error

	// UpdateLastLogin records a successful authentication.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// List returns accounts ordered by join date, oldest first.
	List(ctx context.Context, limit, offset int) ([]domain.Account, error)

	Count(ctx context.Context) (int64, error)
}
