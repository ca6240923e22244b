package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/housekey/internal/invite/domain"
	"github.com/aussiebroadwan/housekey/internal/invite/service"
	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
)

type InviteValidateHandler struct {
	InviteService *service.InviteService
	RateLimits    *service.RateLimitService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invite Endpoint
//	@Description	Check whether a token value would currently be accepted, without consuming a use.
//	@Description	Unknown, expired, revoked, exhausted and malformed tokens all come back as valid=false
//	@Description	with reason "invalid"; the endpoint never reveals why a token failed or whether it exists.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.ValidateInviteRequest		true	"Validate request"
//	@Success		200		{object}	invitesdk.ValidateInviteResponse	"valid, resource_id, resource_name, uses_remaining, expires_at"
//	@Failure		400		{object}	invitesdk.ErrorResponse				"error, error_description"
//	@Failure		429		{object}	invitesdk.ErrorResponse				"error, error_description"
//	@Failure		503		{object}	invitesdk.ErrorResponse				"error, error_description"
//	@Router			/v1/invites/validate [post].
func (h *InviteValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse JSON request body
	var req invitesdk.ValidateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.TokenValue == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "token_value is required",
		})
		return
	}

	// Budget checks come before any digest work. The per-caller budget
	// slows keyspace sweeps from one address; the per-token budget slows
	// distributed guessing against a single invite.
	if d := h.RateLimits.Check(ctx, h.RateLimits.ValidatePerIP, httpx.IPKeyExtractor(r)); !d.Allowed {
		writeRateLimited(w, d)
		return
	}
	if id, _, err := domain.SplitTokenValue(req.TokenValue); err == nil {
		if d := h.RateLimits.Check(ctx, h.RateLimits.ValidatePerToken, id); !d.Allowed {
			writeRateLimited(w, d)
			return
		}
	}

	result, err := h.InviteService.ValidateInvite(ctx, req.TokenValue)
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			writeStoreUnavailable(w)
			return
		}
		httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to validate invite",
		})
		return
	}

	// Both outcomes are 200: not-redeemable is an answer, not an error
	if !result.Valid {
		httpx.WriteJSON(w, http.StatusOK, invitesdk.ValidateInviteResponse{
			Valid:  false,
			Reason: "invalid",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ValidateInviteResponse{
		Valid:            true,
		ResourceID:       result.ResourceID,
		ResourceName:     result.ResourceName,
		UsesRemaining:    result.UsesRemaining,
		ExpiresAt:        result.ExpiresAt.Unix(),
		IntendedIdentity: result.IntendedIdentity,
	})
}
