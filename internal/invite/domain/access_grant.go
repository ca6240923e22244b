package domain

import "time"

// AccessGrant records a successful redemption. At most one grant exists per
// (grantee, resource) pair; repeat redemptions resolve to the existing row.
type AccessGrant struct {
	ID         string
	GranteeID  string
	ResourceID string
	TokenID    string // the invite that produced this grant
	CreatedAt  time.Time
}
