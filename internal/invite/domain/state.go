package domain

// TokenState describes where an invite token sits in its lifecycle. Active is
// the only state that admits new redemptions; the other three are terminal.
type TokenState int

const (
	StateActive TokenState = iota
	StateExhausted
	StateExpired
	StateRevoked
)

// String returns the lowercase label used in API responses and logs.
func (s TokenState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExhausted:
		return "exhausted"
	case StateExpired:
		return "expired"
	case StateRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state admits no further transitions.
func (s TokenState) IsTerminal() bool {
	return s != StateActive
}
