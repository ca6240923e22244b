package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateAt(t *testing.T) {
	now := time.Now().UTC()
	revoked := now.Add(-time.Hour)

	tests := []struct {
		name  string
		token InviteToken
		want  TokenState
	}{
		{
			name:  "active",
			token: InviteToken{MaxUses: 5, UseCount: 0, ExpiresAt: now.Add(time.Hour)},
			want:  StateActive,
		},
		{
			name:  "active with partial uses",
			token: InviteToken{MaxUses: 5, UseCount: 4, ExpiresAt: now.Add(time.Hour)},
			want:  StateActive,
		},
		{
			name:  "exhausted",
			token: InviteToken{MaxUses: 5, UseCount: 5, ExpiresAt: now.Add(time.Hour)},
			want:  StateExhausted,
		},
		{
			name:  "expired",
			token: InviteToken{MaxUses: 5, UseCount: 0, ExpiresAt: now.Add(-time.Hour)},
			want:  StateExpired,
		},
		{
			name:  "revoked",
			token: InviteToken{MaxUses: 5, UseCount: 0, ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
			want:  StateRevoked,
		},
		{
			name:  "revoked wins over exhausted",
			token: InviteToken{MaxUses: 5, UseCount: 5, ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
			want:  StateRevoked,
		},
		{
			name:  "revoked wins over expired",
			token: InviteToken{MaxUses: 5, UseCount: 0, ExpiresAt: now.Add(-time.Hour), RevokedAt: &revoked},
			want:  StateRevoked,
		},
		{
			name:  "exhausted wins over expired",
			token: InviteToken{MaxUses: 5, UseCount: 5, ExpiresAt: now.Add(-time.Hour)},
			want:  StateExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.token.StateAt(now))
		})
	}
}

func TestStateAt_ExpiryGrace(t *testing.T) {
	now := time.Now().UTC()

	// Expired two minutes ago: still inside the grace window
	inGrace := InviteToken{MaxUses: 1, ExpiresAt: now.Add(-2 * time.Minute)}
	require.Equal(t, StateActive, inGrace.StateAt(now))

	// Expired just past the grace window
	pastGrace := InviteToken{MaxUses: 1, ExpiresAt: now.Add(-ExpiryGrace - time.Second)}
	require.Equal(t, StateExpired, pastGrace.StateAt(now))

	// Exactly at the grace boundary counts as still valid
	atBoundary := InviteToken{MaxUses: 1, ExpiresAt: now.Add(-ExpiryGrace)}
	require.Equal(t, StateActive, atBoundary.StateAt(now))
}

func TestTokenStateLabels(t *testing.T) {
	require.Equal(t, "active", StateActive.String())
	require.Equal(t, "exhausted", StateExhausted.String())
	require.Equal(t, "expired", StateExpired.String())
	require.Equal(t, "revoked", StateRevoked.String())
	require.Equal(t, "unknown", TokenState(99).String())

	require.False(t, StateActive.IsTerminal())
	require.True(t, StateExhausted.IsTerminal())
	require.True(t, StateExpired.IsTerminal())
	require.True(t, StateRevoked.IsTerminal())
}

func TestUsesRemaining(t *testing.T) {
	require.Equal(t, 5, InviteToken{MaxUses: 5, UseCount: 0}.UsesRemaining())
	require.Equal(t, 1, InviteToken{MaxUses: 5, UseCount: 4}.UsesRemaining())
	require.Equal(t, 0, InviteToken{MaxUses: 5, UseCount: 5}.UsesRemaining())

	// Over-count never goes negative
	require.Equal(t, 0, InviteToken{MaxUses: 5, UseCount: 6}.UsesRemaining())
}

func TestTokenValueRoundTrip(t *testing.T) {
	value := ComposeTokenValue("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "s3cr3t-part")

	id, secret, err := SplitTokenValue(value)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", id)
	require.Equal(t, "s3cr3t-part", secret)
}

func TestSplitTokenValue_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no separator", "justonepart"},
		{"empty id", ".secret"},
		{"empty secret", "id."},
		{"only separator", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SplitTokenValue(tt.value)
			require.ErrorIs(t, err, ErrMalformedTokenValue)
		})
	}
}

func TestSplitTokenValue_SecretWithDots(t *testing.T) {
	// Only the first separator splits; dots may appear in the secret half
	id, secret, err := SplitTokenValue("tokenid.with.dots")
	require.NoError(t, err)
	require.Equal(t, "tokenid", id)
	require.Equal(t, "with.dots", secret)
}

func TestMaskIdentity(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		want     string
	}{
		{"empty", "", ""},
		{"email", "jordan@example.com", "j*****@example.com"},
		{"short local part", "a@example.com", "*@example.com"},
		{"plain username", "jordan", "j*****"},
		{"single char", "j", "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MaskIdentity(tt.identity))
		})
	}
}
