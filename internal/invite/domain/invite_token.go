package domain

import (
	"errors"
	"strings"
	"time"
)

// ExpiryGrace is the clock-skew allowance applied when deciding whether a
// token has expired. A token whose expiry passed less than this long ago is
// still honoured, always in the redeemer's favour.
const ExpiryGrace = 5 * time.Minute

// ErrMalformedTokenValue reports a presented token value that does not have
// the expected "<id>.<secret>" shape.
var ErrMalformedTokenValue = errors.New("malformed token value")

// InviteToken models the stored invite record. The raw token value is never
// stored; only the salted hash of its secret half.
type InviteToken struct {
	ID               string
	ResourceID       string
	ResourceName     string // display snapshot taken at mint time
	TokenHash        string // base64url Argon2id digest of the secret
	TokenSalt        string // base64url per-token salt
	MaxUses          int
	UseCount         int
	IntendedIdentity string // optional hint, empty when the invite is open
	IssuedBy         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ExpiresAt        time.Time
	RevokedAt        *time.Time
}

// StateAt derives the lifecycle state at the given instant. Precedence when
// several conditions hold at once: revoked beats exhausted beats expired.
func (t InviteToken) StateAt(now time.Time) TokenState {
	if t.RevokedAt != nil {
		return StateRevoked
	}
	if t.UseCount >= t.MaxUses {
		return StateExhausted
	}
	if t.IsExpiredAt(now) {
		return StateExpired
	}
	return StateActive
}

// IsExpiredAt reports whether the token's expiry, padded by ExpiryGrace, has
// passed.
func (t InviteToken) IsExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt.Add(ExpiryGrace))
}

// UsesRemaining returns how many redemptions are left, never negative.
func (t InviteToken) UsesRemaining() int {
	if remaining := t.MaxUses - t.UseCount; remaining > 0 {
		return remaining
	}
	return 0
}

// ComposeTokenValue builds the wire form handed to the inviter exactly once
// at generation time: "<id>.<secret>". The id half is a plain selector for
// lookup; the secret half is what gets hashed.
func ComposeTokenValue(id, secret string) string {
	return id + "." + secret
}

// SplitTokenValue breaks a presented token value into its selector and secret
// halves. Both halves must be non-empty.
func SplitTokenValue(value string) (id, secret string, err error) {
	id, secret, ok := strings.Cut(value, ".")
	if !ok || id == "" || secret == "" {
		return "", "", ErrMalformedTokenValue
	}
	return id, secret, nil
}

// MaskIdentity obscures an identity hint for inclusion in API responses.
// "jordan@example.com" becomes "j*****@example.com"; non-email hints keep
// their first character only.
func MaskIdentity(identity string) string {
	if identity == "" {
		return ""
	}

	local, domain, isEmail := strings.Cut(identity, "@")
	if !isEmail {
		return maskWord(identity)
	}
	return maskWord(local) + "@" + domain
}

func maskWord(s string) string {
	runes := []rune(s)
	if len(runes) <= 1 {
		return "*"
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}
