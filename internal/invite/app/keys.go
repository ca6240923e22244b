package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/housekey/pkg/jwtx"
)

// InitVerifierKeys loads the verification key material named by the
// config and builds the token verifier around it.
//
// Key sources:
//   - JWKS: keys are fetched once from the issuer's JWKS endpoint at
//     startup. A restart picks up rotated keys.
//   - Static PEM: a single PKIX public key supplied via environment,
//     for deployments where the issuer has no reachable JWKS endpoint.
//
// The service only ever verifies tokens. It holds no private keys and
// cannot mint credentials of its own.
func InitVerifierKeys(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, jwtx.Verifier, error) {
	keys := jwtx.NewKeySet()

	switch {
	case cfg.JWKSURL != "":
		client := &http.Client{Timeout: 10 * time.Second}
		jwks, err := jwtx.FetchJWKS(ctx, client, cfg.JWKSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch JWKS: %w", err)
		}
		if err := keys.ResetFromJWKS(jwks); err != nil {
			return nil, nil, fmt.Errorf("failed to load JWKS keys: %w", err)
		}
		logger.Info("verification keys loaded from JWKS",
			"url", cfg.JWKSURL,
			"num_keys", len(jwks.Keys),
		)

	default:
		pub, err := jwtx.ParsePublicKeyPEM(cfg.PublicKeyPEM)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		keys.AddPublicKey(cfg.PublicKeyID, pub)
		logger.Info("verification key loaded from PEM", "kid", cfg.PublicKeyID)
	}

	var verifier jwtx.Verifier
	switch cfg.Algorithm {
	case "RS256":
		verifier = jwtx.NewCommonRS256(keys, cfg.Issuer, cfg.Audience)
	case "ES256":
		verifier = jwtx.NewCommonES256(keys, cfg.Issuer, cfg.Audience)
	default:
		verifier = jwtx.NewCommonEdDSA(keys, cfg.Issuer, cfg.Audience)
	}

	logger.Info("token verifier initialized",
		"algorithm", cfg.Algorithm,
		"issuer", cfg.Issuer,
	)

	return keys, verifier, nil
}
