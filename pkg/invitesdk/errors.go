package invitesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodePermissionDenied  = "permission_denied"
	ErrorCodeInviteNotFound    = "invite_not_found"
	ErrorCodeInvalidInvite     = "invalid_invite"
	ErrorCodeInviteExpired     = "invite_expired"
	ErrorCodeInviteRevoked     = "invite_revoked"
	ErrorCodeCapacityReached   = "capacity_reached"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
	ErrorCodeStoreUnavailable  = "store_unavailable"
	ErrorCodeServerError       = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError represents an error response from the invite service. It
// implements the error interface so SDK calls surface typed failures.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invite_expired")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// RetryAfter is how long the caller should wait before retrying.
	// Only set on rate limited (429) and unavailable (503) responses
	// that carried a Retry-After header.
	RetryAfter time.Duration `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsRetryable reports whether the failure is worth retrying after
// RetryAfter has passed.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusServiceUnavailable
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Error
		apiErr.Description = errResp.ErrorDescription
	}

	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
		apiErr.RetryAfter = time.Duration(seconds) * time.Second
	}

	return apiErr
}
