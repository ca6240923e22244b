package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/store"
	"github.com/aussiebroadwan/housekey/pkg/cryptox"
	"github.com/aussiebroadwan/housekey/pkg/idx"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

var (
	ErrInvalidRequest   = errors.New("invalid invite request")
	ErrPermissionDenied = errors.New("caller does not manage this resource")
	ErrInviteNotFound   = errors.New("invite not found")
	ErrInviteInvalid    = errors.New("invite token invalid")
	ErrInviteExpired    = errors.New("invite token expired")
	ErrInviteRevoked    = errors.New("invite token revoked")
	ErrCapacityReached  = errors.New("invite has no uses remaining")
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	// DefaultTTL applies when a mint request does not name an expiry.
	DefaultTTL = 7 * 24 * time.Hour

	// MaxTTL caps how far out a minted invite may expire.
	MaxTTL = 90 * 24 * time.Hour

	// MaxUsesCap bounds multi-use invites so a leaked token can't
	// become an unbounded door into a resource.
	MaxUsesCap = 10_000
)

type InviteService struct {
	Store store.Store

	// TTLDefault and TTLMax override DefaultTTL and MaxTTL when positive.
	TTLDefault time.Duration
	TTLMax     time.Duration

	// Decoy digest for token checks that miss. Verifying against it
	// keeps the cost of a miss equal to the cost of a hit, so response
	// timing does not reveal whether a token id exists.
	decoyOnce sync.Once
	decoySalt string
	decoyHash string
}

// MintParams carries the caller-supplied fields of a mint request.
// ResourceName is a display snapshot for previews and listings; access
// decisions only ever read ResourceID.
type MintParams struct {
	ResourceID       string
	ResourceName     string
	MaxUses          int
	TTL              time.Duration
	IntendedIdentity string
}

// MintInvite creates an invite token scoped to a resource and returns the
// stored record plus the composed token value. The raw secret inside the
// value exists only in the return path; everything persisted is a salted
// Argon2id digest, so the value cannot be recovered or re-shown later.
func (s *InviteService) MintInvite(
	ctx context.Context,
	p MintParams,
	issuedBy string,
	managedResources []string,
) (domain.InviteToken, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if p.ResourceID == "" || issuedBy == "" {
		log.Warn("invite mint missing required fields")
		return domain.InviteToken{}, "", ErrInvalidRequest
	}
	if p.MaxUses < 1 || p.MaxUses > MaxUsesCap {
		log.Warn("invite mint with out-of-range max uses",
			slog.Int("max_uses", p.MaxUses),
		)
		return domain.InviteToken{}, "", ErrInvalidRequest
	}
	ttlDefault, ttlMax := s.ttlBounds()
	ttl := p.TTL
	if ttl == 0 {
		ttl = ttlDefault
	}
	if ttl < 0 || ttl > ttlMax {
		log.Warn("invite mint with out-of-range ttl",
			slog.Duration("ttl", ttl),
		)
		return domain.InviteToken{}, "", ErrInvalidRequest
	}

	// 2. The issuer must manage the resource the invite opens.
	if !slices.Contains(managedResources, p.ResourceID) {
		log.Warn("invite mint for unmanaged resource",
			slog.String("resource_id", p.ResourceID),
			slog.String("issued_by", issuedBy),
		)
		return domain.InviteToken{}, "", ErrPermissionDenied
	}

	// 3. Generate the selector and the secret half of the token value.
	id := idx.New().String()
	secret, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		log.Error("failed to generate invite secret", slog.Any("error", err))
		return domain.InviteToken{}, "", ErrStoreUnavailable
	}

	// 4. Digest the secret. Only the salt and hash are stored.
	salt, err := cryptox.NewSalt()
	if err != nil {
		log.Error("failed to generate invite salt", slog.Any("error", err))
		return domain.InviteToken{}, "", ErrStoreUnavailable
	}
	hash, err := cryptox.HashTokenSecret(secret, salt)
	if err != nil {
		log.Error("failed to hash invite secret", slog.Any("error", err))
		return domain.InviteToken{}, "", ErrStoreUnavailable
	}

	now := time.Now()
	token := domain.InviteToken{
		ID:               id,
		ResourceID:       p.ResourceID,
		ResourceName:     p.ResourceName,
		TokenHash:        hash,
		TokenSalt:        salt,
		MaxUses:          p.MaxUses,
		UseCount:         0,
		IntendedIdentity: p.IntendedIdentity,
		IssuedBy:         issuedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
		ExpiresAt:        now.Add(ttl),
	}

	// 5. Persist the record.
	if err := s.Store.Tokens().CreateToken(ctx, token); err != nil {
		log.Error("failed to create invite",
			slog.String("token_id", id),
			slog.Any("error", err),
		)
		return domain.InviteToken{}, "", ErrStoreUnavailable
	}

	log.Info("invite minted",
		slog.String("token_id", id),
		slog.String("resource_id", p.ResourceID),
		slog.String("issued_by", issuedBy),
		slog.Int("max_uses", p.MaxUses),
		slog.Time("expires_at", token.ExpiresAt),
	)

	// 6. Compose the one-time-visible token value.
	return token, domain.ComposeTokenValue(id, secret), nil
}

// ttlBounds resolves the effective default and maximum TTL, falling back
// to the package constants when the service carries no overrides.
func (s *InviteService) ttlBounds() (def, max time.Duration) {
	def, max = s.TTLDefault, s.TTLMax
	if def <= 0 {
		def = DefaultTTL
	}
	if max <= 0 {
		max = MaxTTL
	}
	return def, max
}

// RevokeInvite marks a token revoked. Revocation is permanent and takes
// precedence over every other state; revoking an already-revoked token
// succeeds without moving the original revocation time.
func (s *InviteService) RevokeInvite(
	ctx context.Context,
	tokenID string,
	managedResources []string,
) (domain.InviteToken, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the token so we can check resource management rights.
	token, err := s.Store.Tokens().GetTokenByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("revoke attempted for unknown invite",
				slog.String("token_id", tokenID),
			)
			return domain.InviteToken{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.InviteToken{}, ErrStoreUnavailable
	}

	// 2. The caller must manage the resource the token belongs to.
	if !slices.Contains(managedResources, token.ResourceID) {
		log.Warn("revoke attempted for unmanaged resource",
			slog.String("token_id", tokenID),
			slog.String("resource_id", token.ResourceID),
		)
		return domain.InviteToken{}, ErrPermissionDenied
	}

	// 3. Revoke. The store leaves an existing revocation time untouched.
	now := time.Now()
	if err := s.Store.Tokens().RevokeToken(ctx, tokenID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteToken{}, ErrInviteNotFound
		}
		log.Error("failed to revoke invite",
			slog.String("token_id", tokenID),
			slog.Any("error", err),
		)
		return domain.InviteToken{}, ErrStoreUnavailable
	}

	// 4. Re-read so the caller sees the effective revocation time,
	// which differs from now when the token was already revoked.
	token, err = s.Store.Tokens().GetTokenByID(ctx, tokenID)
	if err != nil {
		log.Error("failed to re-fetch revoked invite", slog.Any("error", err))
		return domain.InviteToken{}, ErrStoreUnavailable
	}

	log.Info("invite revoked",
		slog.String("token_id", tokenID),
		slog.String("resource_id", token.ResourceID),
	)

	return token, nil
}

// ListInvites returns every invite minted for a resource, newest first.
// Records carry digests rather than token values, so a listing can never
// leak a usable invite.
func (s *InviteService) ListInvites(
	ctx context.Context,
	resourceID string,
	managedResources []string,
) ([]domain.InviteToken, error) {
	log := slogx.FromContext(ctx)

	if resourceID == "" {
		return nil, ErrInvalidRequest
	}
	if !slices.Contains(managedResources, resourceID) {
		log.Warn("list attempted for unmanaged resource",
			slog.String("resource_id", resourceID),
		)
		return nil, ErrPermissionDenied
	}

	tokens, err := s.Store.Tokens().ListTokensByResource(ctx, resourceID)
	if err != nil {
		log.Error("failed to list invites",
			slog.String("resource_id", resourceID),
			slog.Any("error", err),
		)
		return nil, ErrStoreUnavailable
	}
	return tokens, nil
}
