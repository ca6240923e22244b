package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the invite service reads from the environment.
type Config struct {
	// Issuer is the identity provider whose access tokens the service
	// trusts. Tokens from any other issuer are rejected.
	Issuer string `env:"HOUSEKEY_AUTH_ISSUER"`

	// Audience, when set, lists values accepted in the aud claim. Tokens
	// must carry at least one of them.
	Audience []string `env:"HOUSEKEY_AUTH_AUDIENCE" envSeparator:","`

	// Algorithm names the signature scheme tokens are verified with
	// (RS256, ES256, EdDSA).
	Algorithm string `env:"HOUSEKEY_AUTH_ALGORITHM" envDefault:"EdDSA"`

	// JWKSURL fetches verification keys from the issuer's JWKS endpoint.
	// Exactly one of JWKSURL and PublicKeyPEM must be set.
	JWKSURL string `env:"HOUSEKEY_AUTH_JWKS_URL"`

	// PublicKeyPEM is a PKIX public key in PEM form for deployments
	// without a reachable JWKS endpoint.
	PublicKeyPEM string `env:"HOUSEKEY_AUTH_PUBLIC_KEY"`

	// PublicKeyID is the kid tokens must carry when PublicKeyPEM is used.
	PublicKeyID string `env:"HOUSEKEY_AUTH_KEY_ID" envDefault:"housekey-idp-key"`

	// DatabaseFile is the path to the SQLite database file.
	DatabaseFile string `env:"HOUSEKEY_DATABASE_FILE" envDefault:"housekey.db"`

	// PepperFile is the path to the secret mixed into token digests.
	// Generated with restrictive permissions on first start if missing.
	PepperFile string `env:"HOUSEKEY_PEPPER_FILE" envDefault:"pepper"`

	// AllowedOrigins lists origins allowed to call the browser-facing
	// endpoints. Empty means any origin.
	AllowedOrigins []string `env:"HOUSEKEY_ALLOWED_ORIGINS" envSeparator:","`

	// InviteTTLDefault applies when a mint request does not name a ttl;
	// InviteTTLMax caps how far out any invite may expire.
	InviteTTLDefault time.Duration `env:"HOUSEKEY_INVITE_TTL_DEFAULT" envDefault:"168h"`
	InviteTTLMax     time.Duration `env:"HOUSEKEY_INVITE_TTL_MAX" envDefault:"2160h"`

	// Durable rate-limit budgets, counted in the store so they hold
	// across restarts and replicas. Requests per window, per policy.
	RateLimitIPRequests      int64         `env:"HOUSEKEY_RATELIMIT_IP_REQUESTS" envDefault:"60"`
	RateLimitIPWindow        time.Duration `env:"HOUSEKEY_RATELIMIT_IP_WINDOW" envDefault:"1m"`
	RateLimitTokenRequests   int64         `env:"HOUSEKEY_RATELIMIT_TOKEN_REQUESTS" envDefault:"20"`
	RateLimitTokenWindow     time.Duration `env:"HOUSEKEY_RATELIMIT_TOKEN_WINDOW" envDefault:"1m"`
	RateLimitGranteeRequests int64         `env:"HOUSEKEY_RATELIMIT_GRANTEE_REQUESTS" envDefault:"20"`
	RateLimitGranteeWindow   time.Duration `env:"HOUSEKEY_RATELIMIT_GRANTEE_WINDOW" envDefault:"1m"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// TokenRetention is how long terminal tokens stay listable before
	// housekeeping deletes them.
	TokenRetention time.Duration `env:"HOUSEKEY_TOKEN_RETENTION" envDefault:"720h"`
}

// LoadConfig parses and validates the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (cfg Config) Validate() error {
	if cfg.Issuer == "" {
		return errors.New("HOUSEKEY_AUTH_ISSUER is required")
	}
	if cfg.JWKSURL == "" && cfg.PublicKeyPEM == "" {
		return errors.New("one of HOUSEKEY_AUTH_JWKS_URL or HOUSEKEY_AUTH_PUBLIC_KEY is required")
	}
	if cfg.JWKSURL != "" && cfg.PublicKeyPEM != "" {
		return errors.New("HOUSEKEY_AUTH_JWKS_URL and HOUSEKEY_AUTH_PUBLIC_KEY are mutually exclusive")
	}

	switch cfg.Algorithm {
	case "RS256", "ES256", "EdDSA":
	default:
		return fmt.Errorf("unsupported HOUSEKEY_AUTH_ALGORITHM %q", cfg.Algorithm)
	}

	if cfg.InviteTTLDefault <= 0 || cfg.InviteTTLMax <= 0 {
		return errors.New("invite TTL settings must be positive")
	}
	if cfg.InviteTTLDefault > cfg.InviteTTLMax {
		return errors.New("HOUSEKEY_INVITE_TTL_DEFAULT cannot exceed HOUSEKEY_INVITE_TTL_MAX")
	}

	return nil
}

// DatabaseDSN builds the SQLite connection string. Pragmas use the
// _pragma form the modernc driver understands; WAL keeps readers
// unblocked during redemption writes and the immediate txlock grabs the
// write lock up front instead of failing mid-transaction.
func (cfg Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate",
		cfg.DatabaseFile,
	)
}
