package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/store"
	"github.com/aussiebroadwan/housekey/pkg/cryptox"
	"github.com/aussiebroadwan/housekey/pkg/idx"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

// AcceptResult reports a redemption. AlreadyGranted means the grantee
// held a grant for the resource before this call; no use was consumed.
type AcceptResult struct {
	Grant          domain.AccessGrant
	AlreadyGranted bool
}

// AcceptInvite redeems a token value for the calling grantee. On success
// the grantee holds an access grant for the token's resource. Redeeming
// a token for a resource the grantee already holds a grant on succeeds
// without consuming a use, so retries after a lost response are safe.
//
// The digest check runs before the transaction opens: the hash and salt
// of a token row never change, so there is no point holding a write
// transaction across a deliberately slow Argon2id derivation. Everything
// that can change concurrently (use count, revocation, expiry) is
// re-checked atomically by the guarded update inside the transaction.
func (s *InviteService) AcceptInvite(
	ctx context.Context,
	tokenValue string,
	granteeID string,
) (AcceptResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if granteeID == "" {
		log.Warn("invite redemption missing grantee")
		return AcceptResult{}, ErrInvalidRequest
	}

	// 2. Split the value into selector and secret.
	id, secret, err := domain.SplitTokenValue(tokenValue)
	if err != nil {
		s.verifyDecoy()
		return AcceptResult{}, ErrInviteInvalid
	}

	// 3. Look up by selector. Unknown ids pay the same digest cost.
	token, err := s.Store.Tokens().GetTokenByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.verifyDecoy()
			return AcceptResult{}, ErrInviteInvalid
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return AcceptResult{}, ErrStoreUnavailable
	}

	// 4. Verify the secret against the stored digest.
	if !cryptox.VerifyTokenSecret(secret, token.TokenSalt, token.TokenHash) {
		log.Warn("invite redemption with wrong secret",
			slog.String("token_id", token.ID),
		)
		return AcceptResult{}, ErrInviteInvalid
	}

	// 5. Consume a use and record the grant atomically.
	var result AcceptResult
	now := time.Now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// An existing grant for this (grantee, resource) pair means the
		// redeemer is already in. Succeed without consuming a use, even
		// when the grant came from a different token.
		existing, err := tx.Grants().GetGrant(ctx, granteeID, token.ResourceID)
		if err == nil {
			result = AcceptResult{Grant: existing, AlreadyGranted: true}
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// The guarded update enforces revocation, expiry and capacity
		// in one statement, so concurrent redeemers can never overshoot
		// max uses.
		ok, err := tx.Tokens().ConsumeUse(ctx, token.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			// Refused. Re-read inside the transaction to name the reason.
			current, err := tx.Tokens().GetTokenByID(ctx, token.ID)
			if err != nil {
				return err
			}
			return redeemabilityErr(current, now)
		}

		grant := domain.AccessGrant{
			ID:         idx.New().String(),
			GranteeID:  granteeID,
			ResourceID: token.ResourceID,
			TokenID:    token.ID,
			CreatedAt:  now,
		}
		if err := tx.Grants().CreateGrant(ctx, grant); err != nil {
			return err
		}
		result = AcceptResult{Grant: grant}
		return nil
	})

	switch {
	case err == nil:
		// Fall through to logging below.

	case errors.Is(err, ErrInviteRevoked),
		errors.Is(err, ErrInviteExpired),
		errors.Is(err, ErrCapacityReached):
		log.Warn("invite redemption refused",
			slog.String("token_id", token.ID),
			slog.String("reason", err.Error()),
		)
		return AcceptResult{}, err

	case errors.Is(err, store.ErrAlreadyExists):
		// Two redemptions for the same (grantee, resource) raced past the
		// grant check. The transaction rolled back, restoring the use
		// count; the winner's grant satisfies this call too.
		existing, gerr := s.Store.Grants().GetGrant(ctx, granteeID, token.ResourceID)
		if gerr != nil {
			log.Error("failed to fetch racing grant", slog.Any("error", gerr))
			return AcceptResult{}, ErrStoreUnavailable
		}
		result = AcceptResult{Grant: existing, AlreadyGranted: true}

	case errors.Is(err, store.ErrNotFound):
		// The token vanished between the lookup and the transaction,
		// which only retention cleanup can cause.
		return AcceptResult{}, ErrInviteInvalid

	default:
		log.Error("failed to redeem invite",
			slog.String("token_id", token.ID),
			slog.Any("error", err),
		)
		return AcceptResult{}, ErrStoreUnavailable
	}

	if result.AlreadyGranted {
		log.Debug("invite redemption already granted",
			slog.String("token_id", token.ID),
			slog.String("grantee_id", granteeID),
			slog.String("resource_id", token.ResourceID),
		)
		return result, nil
	}

	log.Info("invite redeemed",
		slog.String("token_id", token.ID),
		slog.String("grant_id", result.Grant.ID),
		slog.String("grantee_id", granteeID),
		slog.String("resource_id", token.ResourceID),
	)
	return result, nil
}

// redeemabilityErr maps the state of a token that refused a use to the
// specific refusal. Revocation outranks exhaustion, which outranks
// expiry, matching how states are reported everywhere else.
func redeemabilityErr(t domain.InviteToken, now time.Time) error {
	switch t.StateAt(now) {
	case domain.StateRevoked:
		return ErrInviteRevoked
	case domain.StateExhausted:
		return ErrCapacityReached
	case domain.StateExpired:
		return ErrInviteExpired
	default:
		return ErrInviteInvalid
	}
}
