package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/store"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitPolicy is a fixed-window budget for one class of caller key.
type RateLimitPolicy struct {
	// Name prefixes stored keys so policies never collide on shared
	// key material, such as an IP that is also someone's user id.
	Name   string
	Limit  int64
	Window time.Duration
}

// Default policies for the token endpoints. Validation is the enumeration
// surface, so it carries both a per-caller and a per-token budget.
var (
	PolicyValidatePerIP    = RateLimitPolicy{Name: "validate_ip", Limit: 60, Window: time.Minute}
	PolicyValidatePerToken = RateLimitPolicy{Name: "validate_token", Limit: 20, Window: time.Minute}
	PolicyAcceptPerGrantee = RateLimitPolicy{Name: "accept_grantee", Limit: 20, Window: time.Minute}
)

// Decision reports whether a request fits its window budget.
type Decision struct {
	Allowed    bool
	Limit      int64
	Window     time.Duration
	RetryAfter time.Duration
}

// RateLimitService counts requests in fixed windows backed by the store,
// so budgets hold across restarts and across replicas sharing a database.
type RateLimitService struct {
	Store store.Store

	// Policies in effect for the token endpoints, populated by
	// NewRateLimitService from configured overrides plus the defaults.
	ValidatePerIP    RateLimitPolicy
	ValidatePerToken RateLimitPolicy
	AcceptPerGrantee RateLimitPolicy
}

// NewRateLimitService builds the limiter with the given budget overrides.
// Any override with a missing limit or window keeps the default for that
// field, so partial configuration never zeroes out a budget.
func NewRateLimitService(st store.Store, perIP, perToken, perGrantee RateLimitPolicy) *RateLimitService {
	return &RateLimitService{
		Store:            st,
		ValidatePerIP:    mergePolicy(perIP, PolicyValidatePerIP),
		ValidatePerToken: mergePolicy(perToken, PolicyValidatePerToken),
		AcceptPerGrantee: mergePolicy(perGrantee, PolicyAcceptPerGrantee),
	}
}

func mergePolicy(p, def RateLimitPolicy) RateLimitPolicy {
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Limit <= 0 {
		p.Limit = def.Limit
	}
	if p.Window <= 0 {
		p.Window = def.Window
	}
	return p
}

// Check spends one unit of the key's budget under the policy. A counter
// store failure allows the request: the limiter protects the token
// keyspace from enumeration, and refusing all traffic whenever the
// counter table hiccups would turn it into an outage amplifier.
func (s *RateLimitService) Check(ctx context.Context, policy RateLimitPolicy, key string) Decision {
	log := slogx.FromContext(ctx)

	now := time.Now()
	windowStart := now.Truncate(policy.Window)

	count, err := s.Store.RateLimits().Increment(ctx, policy.Name+":"+key, windowStart)
	if err != nil {
		log.Warn("rate limit counter unavailable, allowing request",
			slog.String("policy", policy.Name),
			slog.Any("error", err),
		)
		return Decision{Allowed: true, Limit: policy.Limit, Window: policy.Window}
	}

	if count > policy.Limit {
		retryAfter := windowStart.Add(policy.Window).Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return Decision{
			Allowed:    false,
			Limit:      policy.Limit,
			Window:     policy.Window,
			RetryAfter: retryAfter,
		}
	}

	return Decision{Allowed: true, Limit: policy.Limit, Window: policy.Window}
}
