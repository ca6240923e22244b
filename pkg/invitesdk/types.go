package invitesdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the standard error envelope returned by the service.
// This is used internally for parsing HTTP error responses. Client code
// should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_invite")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Invite Types
// ============================================================================

// Invite is a minted invite token record. It never carries the token
// value: the value is shown exactly once in MintInviteResponse and cannot
// be recovered afterwards.
type Invite struct {
	// ID is the public selector half of the token value
	ID string `json:"id"`

	// ResourceID is the resource this invite opens
	ResourceID string `json:"resource_id"`

	// ResourceName is the display name snapshot taken when the invite
	// was minted, when one was given
	ResourceName string `json:"resource_name,omitempty"`

	// State is one of "active", "exhausted", "expired", "revoked"
	State string `json:"state"`

	// MaxUses is the redemption capacity this invite was minted with
	MaxUses int `json:"max_uses"`

	// UseCount is how many redemptions have consumed a use so far
	UseCount int `json:"use_count"`

	// UsesRemaining is MaxUses minus UseCount, never negative
	UsesRemaining int `json:"uses_remaining"`

	// IntendedIdentity is the masked recipient hint, when one was given
	IntendedIdentity string `json:"intended_identity,omitempty"`

	// IssuedBy is the subject that minted the invite
	IssuedBy string `json:"issued_by"`

	// CreatedAt is the mint time as a Unix timestamp
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the expiry time as a Unix timestamp
	ExpiresAt int64 `json:"expires_at"`

	// RevokedAt is the revocation time as a Unix timestamp, if revoked
	RevokedAt int64 `json:"revoked_at,omitempty"`
}

// MintInviteRequest creates a new invite token for a resource.
type MintInviteRequest struct {
	// ResourceID is the resource the invite opens (required)
	ResourceID string `json:"resource_id"`

	// ResourceName is an optional display name snapshotted onto the
	// invite for previews and listings. Access checks ignore it.
	ResourceName string `json:"resource_name,omitempty"`

	// MaxUses is the redemption capacity (default 1)
	MaxUses int `json:"max_uses,omitempty"`

	// TTLSeconds is how long the invite stays redeemable (default 7 days)
	TTLSeconds int64 `json:"ttl_seconds,omitempty"`

	// IntendedIdentity is an optional hint naming the expected recipient,
	// such as an email address. It is informational and never enforced.
	IntendedIdentity string `json:"intended_identity,omitempty"`
}

// MintInviteResponse is the one and only place the token value appears.
type MintInviteResponse struct {
	// TokenValue is the shareable invite value. Store or deliver it now;
	// the service cannot show it again.
	TokenValue string `json:"token_value"`

	// Invite is the stored record for the minted token
	Invite Invite `json:"invite"`
}

// ValidateInviteRequest checks a token value without consuming a use.
type ValidateInviteRequest struct {
	// TokenValue is the invite value to check (required)
	TokenValue string `json:"token_value"`
}

// ValidateInviteResponse previews what accepting the token would grant.
// When Valid is false, Reason is always "invalid" and the remaining
// fields are omitted, regardless of why the check failed.
type ValidateInviteResponse struct {
	Valid bool `json:"valid"`

	// Reason is present only when Valid is false
	Reason string `json:"reason,omitempty"`

	ResourceID       string `json:"resource_id,omitempty"`
	ResourceName     string `json:"resource_name,omitempty"`
	UsesRemaining    int    `json:"uses_remaining,omitempty"`
	ExpiresAt        int64  `json:"expires_at,omitempty"`
	IntendedIdentity string `json:"intended_identity,omitempty"`
}

// AcceptInviteRequest redeems a token value for the authenticated caller.
type AcceptInviteRequest struct {
	// TokenValue is the invite value to redeem (required)
	TokenValue string `json:"token_value"`
}

// AccessGrant records that a grantee holds access to a resource.
type AccessGrant struct {
	ID         string `json:"id"`
	GranteeID  string `json:"grantee_id"`
	ResourceID string `json:"resource_id"`

	// TokenID names the invite that produced this grant
	TokenID string `json:"token_id"`

	// CreatedAt is the redemption time as a Unix timestamp
	CreatedAt int64 `json:"created_at"`
}

// AcceptInviteResponse reports a redemption outcome.
type AcceptInviteResponse struct {
	Grant AccessGrant `json:"grant"`

	// AlreadyGranted means the caller held a grant for the resource
	// before this request and no use was consumed.
	AlreadyGranted bool `json:"already_granted"`
}

// ListInvitesResponse lists the invites minted for a resource, newest first.
type ListInvitesResponse struct {
	Invites []Invite `json:"invites"`
}

// RevokeInviteResponse returns the record after revocation.
type RevokeInviteResponse struct {
	Invite Invite `json:"invite"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthChecks contains the status of critical service dependencies.
type HealthChecks struct {
	// Database is "ok" or an error description
	Database string `json:"database,omitempty"`

	// Verifier is "ok" or an error description
	Verifier string `json:"verifier,omitempty"`
}

// HealthResponse is returned by the /livez and /readyz endpoints.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is a human-readable service uptime
	Uptime string `json:"uptime"`

	// Version is the build version of the service
	Version string `json:"version"`

	// Checks holds per-dependency status, only on /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}
