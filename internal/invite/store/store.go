package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable. We can change having the sub-repos as methods later but we do it
// now so we can have more control and actively stop people from accidently
// doing transactions within transactions.
type Store interface {
	Tokens() Tokens
	Grants() Grants
	RateLimits() RateLimits

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., redemption).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
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

type Tokens interface {
	// CreateToken writes a new invite token row (id is provided by app via ULID;
	// token_hash/token_salt come from the generator, never the raw secret).
	CreateToken(ctx context.Context, t domain.InviteToken) error

	// GetTokenByID fetches a token by its selector id regardless of state.
	GetTokenByID(ctx context.Context, id string) (domain.InviteToken, error)

	// ListTokensByResource returns all tokens for a resource, newest first.
	ListTokensByResource(ctx context.Context, resourceID string) ([]domain.InviteToken, error)

	// ConsumeUse atomically increments use_count when, and only when, the token
	// is still redeemable at the given instant: not revoked, not past expiry
	// plus grace, and under max_uses. Returns true if a use was consumed.
	ConsumeUse(ctx context.Context, id string, now time.Time) (bool, error)

	// RevokeToken sets revoked_at for an active token. Returns ErrNotFound for
	// an unknown id; revoking an already-revoked token is a no-op success so
	// the operation stays idempotent.
	RevokeToken(ctx context.Context, id string, now time.Time) error

	// DeleteTerminalTokensBefore removes revoked or exhausted-and-expired
	// tokens whose last update predates cutoff. Returns rows removed.
	DeleteTerminalTokensBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Grants interface {
	// CreateGrant inserts a redemption record. ErrAlreadyExists when the
	// (grantee, resource) pair already holds a grant.
	CreateGrant(ctx context.Context, g domain.AccessGrant) error

	// GetGrant returns the grant for a (grantee, resource) pair.
	GetGrant(ctx context.Context, granteeID, resourceID string) (domain.AccessGrant, error)
}

type RateLimits interface {
	// Increment bumps the counter for (key, windowStart) and returns the count
	// after the bump. The upsert is atomic so concurrent callers across
	// processes sharing the database each see a distinct count.
	Increment(ctx context.Context, key string, windowStart time.Time) (int64, error)

	// DeleteWindowsBefore removes counter rows whose window started before
	// cutoff. Returns rows removed.
	DeleteWindowsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
