package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/service"
	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
)

// inviteJSON shapes a stored token for API responses. The digest and
// salt never leave the store layer, and the intended identity is masked,
// so a listing can never reconstruct or leak a usable token value.
func inviteJSON(t domain.InviteToken, now time.Time) invitesdk.Invite {
	inv := invitesdk.Invite{
		ID:               t.ID,
		ResourceID:       t.ResourceID,
		ResourceName:     t.ResourceName,
		State:            t.StateAt(now).String(),
		MaxUses:          t.MaxUses,
		UseCount:         t.UseCount,
		UsesRemaining:    t.UsesRemaining(),
		IntendedIdentity: domain.MaskIdentity(t.IntendedIdentity),
		IssuedBy:         t.IssuedBy,
		CreatedAt:        t.CreatedAt.Unix(),
		ExpiresAt:        t.ExpiresAt.Unix(),
	}
	if t.RevokedAt != nil {
		inv.RevokedAt = t.RevokedAt.Unix()
	}
	return inv
}

// writeRateLimited answers a request that blew its window budget.
func writeRateLimited(w http.ResponseWriter, d service.Decision) {
	retryAfter := int(d.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
	w.Header().Set("X-RateLimit-Window", d.Window.String())
	httpx.WriteJSON(w, http.StatusTooManyRequests, invitesdk.ErrorResponse{
		Error:            invitesdk.ErrorCodeRateLimited,
		ErrorDescription: "Too many requests, slow down",
	})
}

// writeStoreUnavailable answers a request the store could not serve.
func writeStoreUnavailable(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "5")
	httpx.WriteJSON(w, http.StatusServiceUnavailable, invitesdk.ErrorResponse{
		Error:            invitesdk.ErrorCodeStoreUnavailable,
		ErrorDescription: "The invite store is temporarily unavailable",
	})
}
