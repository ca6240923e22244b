package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/housekey/internal/invite/service"
	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

type InviteAcceptHandler struct {
	InviteService *service.InviteService
	RateLimits    *service.RateLimitService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invite Endpoint
//	@Description	Redeem a token value, granting the authenticated caller access to the invite's resource.
//	@Description	Redeeming a resource the caller already holds a grant on succeeds with already_granted=true
//	@Description	and consumes nothing, so retrying after a lost response is safe.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.AcceptInviteRequest	true	"Accept request"
//	@Success		200		{object}	invitesdk.AcceptInviteResponse	"grant, already_granted"
//	@Failure		400		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		410		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		503		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/accept [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse JSON request body
	var req invitesdk.AcceptInviteRequest
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

	// The grantee is the subject of the verified access token
	granteeID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || granteeID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidToken,
			ErrorDescription: "Authentication required",
		})
		return
	}

	// Budget check before any digest work
	if d := h.RateLimits.Check(ctx, h.RateLimits.AcceptPerGrantee, granteeID); !d.Allowed {
		writeRateLimited(w, d)
		return
	}

	result, err := h.InviteService.AcceptInvite(ctx, req.TokenValue, granteeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid redemption request",
			})
		case errors.Is(err, service.ErrInviteInvalid):
			// Unknown and wrong-secret tokens share one answer
			httpx.WriteJSON(w, http.StatusNotFound, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInvalidInvite,
				ErrorDescription: "The invite does not exist or the value is wrong",
			})
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteJSON(w, http.StatusGone, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInviteExpired,
				ErrorDescription: "The invite has expired",
			})
		case errors.Is(err, service.ErrInviteRevoked):
			httpx.WriteJSON(w, http.StatusGone, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInviteRevoked,
				ErrorDescription: "The invite has been revoked",
			})
		case errors.Is(err, service.ErrCapacityReached):
			httpx.WriteJSON(w, http.StatusConflict, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeCapacityReached,
				ErrorDescription: "The invite has no uses remaining",
			})
		case errors.Is(err, service.ErrStoreUnavailable):
			writeStoreUnavailable(w)
		default:
			log.Error("failed to accept invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeServerError,
				ErrorDescription: "Failed to accept invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.AcceptInviteResponse{
		Grant: invitesdk.AccessGrant{
			ID:         result.Grant.ID,
			GranteeID:  result.Grant.GranteeID,
			ResourceID: result.Grant.ResourceID,
			TokenID:    result.Grant.TokenID,
			CreatedAt:  result.Grant.CreatedAt.Unix(),
		},
		AlreadyGranted: result.AlreadyGranted,
	})
}
