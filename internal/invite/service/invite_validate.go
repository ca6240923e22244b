package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/store"
	"github.com/aussiebroadwan/housekey/pkg/cryptox"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

// ValidationResult is the outcome of a non-consuming token check.
// When the token is not redeemable, Valid is false and every other
// field is zero: callers learn nothing about why the check failed or
// whether the token ever existed.
type ValidationResult struct {
	Valid            bool
	ResourceID       string
	ResourceName     string
	UsesRemaining    int
	ExpiresAt        time.Time
	IntendedIdentity string
}

// ValidateInvite checks whether a token value would currently be accepted,
// without consuming a use. Expired, revoked, exhausted, unknown and
// malformed tokens all produce the same result, and every path performs
// exactly one Argon2id derivation so a miss costs the same as a hit.
func (s *InviteService) ValidateInvite(ctx context.Context, tokenValue string) (ValidationResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Split the value into selector and secret.
	id, secret, err := domain.SplitTokenValue(tokenValue)
	if err != nil {
		s.verifyDecoy()
		return ValidationResult{}, nil
	}

	// 2. Look up by selector. An unknown id still pays the digest cost.
	token, err := s.Store.Tokens().GetTokenByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.verifyDecoy()
			return ValidationResult{}, nil
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return ValidationResult{}, ErrStoreUnavailable
	}

	// 3. Verify the secret against the stored digest.
	if !cryptox.VerifyTokenSecret(secret, token.TokenSalt, token.TokenHash) {
		log.Warn("invite validation with wrong secret",
			slog.String("token_id", token.ID),
		)
		return ValidationResult{}, nil
	}

	// 4. The secret matched; check lifecycle state.
	if token.StateAt(time.Now()) != domain.StateActive {
		return ValidationResult{}, nil
	}

	return ValidationResult{
		Valid:            true,
		ResourceID:       token.ResourceID,
		ResourceName:     token.ResourceName,
		UsesRemaining:    token.UsesRemaining(),
		ExpiresAt:        token.ExpiresAt,
		IntendedIdentity: domain.MaskIdentity(token.IntendedIdentity),
	}, nil
}

// verifyDecoy burns one Argon2id derivation against a fixed throwaway
// digest. Paths that cannot reach a real stored digest call this so
// their duration matches the paths that can.
func (s *InviteService) verifyDecoy() {
	s.decoyOnce.Do(func() {
		salt, err := cryptox.NewSalt()
		if err != nil {
			return
		}
		hash, err := cryptox.HashTokenSecret(cryptox.MustGenerateToken(cryptox.TokenSize128), salt)
		if err != nil {
			return
		}
		s.decoySalt, s.decoyHash = salt, hash
	})
	cryptox.VerifyTokenSecret("", s.decoySalt, s.decoyHash)
}
