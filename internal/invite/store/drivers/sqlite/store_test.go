package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/store"
	"github.com/aussiebroadwan/housekey/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newToken(resourceID string, maxUses int, expiresAt time.Time) domain.InviteToken {
	now := time.Now().UTC()
	return domain.InviteToken{
		ID:         idx.New().String(),
		ResourceID: resourceID,
		TokenHash:  "hash-" + idx.New().String(),
		TokenSalt:  "salt",
		MaxUses:    maxUses,
		IssuedBy:   "issuer-1",
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  expiresAt,
	}
}

func TestTokensCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tok := newToken("board-1", 3, time.Now().UTC().Add(time.Hour))
	tok.ResourceName = "Board One"
	tok.IntendedIdentity = "jordan@example.com"
	require.NoError(t, st.Tokens().CreateToken(ctx, tok))

	got, err := st.Tokens().GetTokenByID(ctx, tok.ID)
	require.NoError(t, err)
	require.Equal(t, tok.ID, got.ID)
	require.Equal(t, tok.ResourceID, got.ResourceID)
	require.Equal(t, "Board One", got.ResourceName)
	require.Equal(t, tok.TokenHash, got.TokenHash)
	require.Equal(t, tok.TokenSalt, got.TokenSalt)
	require.Equal(t, 3, got.MaxUses)
	require.Equal(t, 0, got.UseCount)
	require.Equal(t, "jordan@example.com", got.IntendedIdentity)
	require.Equal(t, "issuer-1", got.IssuedBy)
	require.Nil(t, got.RevokedAt)

	// Millisecond storage keeps timestamps close to the originals
	require.WithinDuration(t, tok.ExpiresAt, got.ExpiresAt, time.Millisecond)

	_, err = st.Tokens().GetTokenByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTokensCreate_DuplicateHash(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tok := newToken("board-1", 1, time.Now().UTC().Add(time.Hour))
	require.NoError(t, st.Tokens().CreateToken(ctx, tok))

	dup := newToken("board-1", 1, time.Now().UTC().Add(time.Hour))
	dup.TokenHash = tok.TokenHash
	require.ErrorIs(t, st.Tokens().CreateToken(ctx, dup), store.ErrAlreadyExists)
}

func TestTokensListByResource(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	expires := time.Now().UTC().Add(time.Hour)
	first := newToken("board-1", 1, expires)
	second := newToken("board-1", 1, expires)
	other := newToken("board-2", 1, expires)

	require.NoError(t, st.Tokens().CreateToken(ctx, first))
	require.NoError(t, st.Tokens().CreateToken(ctx, second))
	require.NoError(t, st.Tokens().CreateToken(ctx, other))

	tokens, err := st.Tokens().ListTokensByResource(ctx, "board-1")
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	// ULID ids sort by creation time, newest first
	require.Equal(t, second.ID, tokens[0].ID)
	require.Equal(t, first.ID, tokens[1].ID)

	empty, err := st.Tokens().ListTokensByResource(ctx, "board-none")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestConsumeUse(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("consumes until capacity", func(t *testing.T) {
		tok := newToken("board-1", 2, now.Add(time.Hour))
		require.NoError(t, st.Tokens().CreateToken(ctx, tok))

		ok, err := st.Tokens().ConsumeUse(ctx, tok.ID, now)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = st.Tokens().ConsumeUse(ctx, tok.ID, now)
		require.NoError(t, err)
		require.True(t, ok)

		// Third attempt exceeds max_uses
		ok, err = st.Tokens().ConsumeUse(ctx, tok.ID, now)
		require.NoError(t, err)
		require.False(t, ok)

		got, err := st.Tokens().GetTokenByID(ctx, tok.ID)
		require.NoError(t, err)
		require.Equal(t, 2, got.UseCount)
	})

	t.Run("rejects revoked token", func(t *testing.T) {
		tok := newToken("board-2", 5, now.Add(time.Hour))
		require.NoError(t, st.Tokens().CreateToken(ctx, tok))
		require.NoError(t, st.Tokens().RevokeToken(ctx, tok.ID, now))

		ok, err := st.Tokens().ConsumeUse(ctx, tok.ID, now)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("honours expiry grace", func(t *testing.T) {
		// Expired two minutes ago: inside the grace window, still consumable
		tok := newToken("board-3", 5, now.Add(-2*time.Minute))
		require.NoError(t, st.Tokens().CreateToken(ctx, tok))

		ok, err := st.Tokens().ConsumeUse(ctx, tok.ID, now)
		require.NoError(t, err)
		require.True(t, ok)

		// Past the grace window: rejected
		stale := newToken("board-3", 5, now.Add(-domain.ExpiryGrace-time.Second))
		require.NoError(t, st.Tokens().CreateToken(ctx, stale))

		ok, err = st.Tokens().ConsumeUse(ctx, stale.ID, now)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown id consumes nothing", func(t *testing.T) {
		ok, err := st.Tokens().ConsumeUse(ctx, "missing", now)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestRevokeToken(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	tok := newToken("board-1", 1, now.Add(time.Hour))
	require.NoError(t, st.Tokens().CreateToken(ctx, tok))

	require.NoError(t, st.Tokens().RevokeToken(ctx, tok.ID, now))

	got, err := st.Tokens().GetTokenByID(ctx, tok.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)

	// Revoking again is an idempotent success and keeps the original timestamp
	firstRevokedAt := *got.RevokedAt
	require.NoError(t, st.Tokens().RevokeToken(ctx, tok.ID, now.Add(time.Minute)))

	got, err = st.Tokens().GetTokenByID(ctx, tok.ID)
	require.NoError(t, err)
	require.Equal(t, firstRevokedAt, *got.RevokedAt)

	require.ErrorIs(t, st.Tokens().RevokeToken(ctx, "missing", now), store.ErrNotFound)
}

func TestDeleteTerminalTokensBefore(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	cutoff := now.Add(-30 * 24 * time.Hour)

	// Active token: untouched
	active := newToken("board-1", 1, now.Add(time.Hour))
	require.NoError(t, st.Tokens().CreateToken(ctx, active))

	// Revoked long ago: swept
	oldRevoked := newToken("board-1", 1, now.Add(time.Hour))
	require.NoError(t, st.Tokens().CreateToken(ctx, oldRevoked))
	require.NoError(t, st.Tokens().RevokeToken(ctx, oldRevoked.ID, cutoff.Add(-time.Hour)))

	// Revoked recently: kept until it ages out
	newRevoked := newToken("board-1", 1, now.Add(time.Hour))
	require.NoError(t, st.Tokens().CreateToken(ctx, newRevoked))
	require.NoError(t, st.Tokens().RevokeToken(ctx, newRevoked.ID, now))

	// Expired long before the cutoff: swept
	oldExpired := newToken("board-1", 1, cutoff.Add(-time.Hour))
	require.NoError(t, st.Tokens().CreateToken(ctx, oldExpired))

	removed, err := st.Tokens().DeleteTerminalTokensBefore(ctx, cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	_, err = st.Tokens().GetTokenByID(ctx, active.ID)
	require.NoError(t, err)
	_, err = st.Tokens().GetTokenByID(ctx, newRevoked.ID)
	require.NoError(t, err)
	_, err = st.Tokens().GetTokenByID(ctx, oldRevoked.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Tokens().GetTokenByID(ctx, oldExpired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGrants(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	grant := domain.AccessGrant{
		ID:         idx.New().String(),
		GranteeID:  "user-1",
		ResourceID: "board-1",
		TokenID:    "token-1",
		CreatedAt:  now,
	}
	require.NoError(t, st.Grants().CreateGrant(ctx, grant))

	got, err := st.Grants().GetGrant(ctx, "user-1", "board-1")
	require.NoError(t, err)
	require.Equal(t, grant.ID, got.ID)
	require.Equal(t, "token-1", got.TokenID)

	// Second grant for the same (grantee, resource) pair conflicts even if it
	// came from a different token
	dup := domain.AccessGrant{
		ID:         idx.New().String(),
		GranteeID:  "user-1",
		ResourceID: "board-1",
		TokenID:    "token-2",
		CreatedAt:  now,
	}
	require.ErrorIs(t, st.Grants().CreateGrant(ctx, dup), store.ErrAlreadyExists)

	// Same grantee, different resource is fine
	other := domain.AccessGrant{
		ID:         idx.New().String(),
		GranteeID:  "user-1",
		ResourceID: "board-2",
		TokenID:    "token-3",
		CreatedAt:  now,
	}
	require.NoError(t, st.Grants().CreateGrant(ctx, other))

	_, err = st.Grants().GetGrant(ctx, "user-1", "board-none")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRateLimitIncrement(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	window := time.Now().UTC().Truncate(time.Minute)

	// Counter starts at 1 and climbs on each call
	for want := int64(1); want <= 3; want++ {
		count, err := st.RateLimits().Increment(ctx, "ip:203.0.113.9", window)
		require.NoError(t, err)
		require.Equal(t, want, count)
	}

	// A different key tracks independently
	count, err := st.RateLimits().Increment(ctx, "ip:203.0.113.10", window)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// A new window restarts the count
	count, err = st.RateLimits().Increment(ctx, "ip:203.0.113.9", window.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestRateLimitDeleteWindowsBefore(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	window := time.Now().UTC().Truncate(time.Minute)
	old := window.Add(-time.Hour)

	_, err := st.RateLimits().Increment(ctx, "k", old)
	require.NoError(t, err)
	_, err = st.RateLimits().Increment(ctx, "k", window)
	require.NoError(t, err)

	removed, err := st.RateLimits().DeleteWindowsBefore(ctx, window)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	// The current window survived; its counter keeps counting
	count, err := st.RateLimits().Increment(ctx, "k", window)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestWithTxCommitAndRollback(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	tok := newToken("board-1", 1, now.Add(time.Hour))

	// Error from fn rolls the insert back
	wantErr := store.ErrAlreadyExists
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tokens().CreateToken(ctx, tok); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	_, err = st.Tokens().GetTokenByID(ctx, tok.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Success commits
	err = st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tokens().CreateToken(ctx, tok)
	})
	require.NoError(t, err)

	_, err = st.Tokens().GetTokenByID(ctx, tok.ID)
	require.NoError(t, err)
}

func TestNestedTxRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err)
}
