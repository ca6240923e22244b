package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/service"
	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

type InviteMintHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Mint Invite Endpoint
//	@Description	Mint a new invite token for a resource the caller manages. The response carries the only copy
//	@Description	of the token value that will ever exist; the service stores a digest and cannot show it again.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invitesdk.MintInviteRequest		true	"Mint request"
//	@Success		200		{object}	invitesdk.MintInviteResponse	"token_value, invite"
//	@Failure		400		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		503		{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [post].
func (h *InviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse JSON request body
	var req invitesdk.MintInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if req.ResourceID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "resource_id is required",
		})
		return
	}

	// Get the calling subject and its managed resources from the token
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidToken,
			ErrorDescription: "Authentication required",
		})
		return
	}
	claims, _ := httpx.ClaimsFromCtx(ctx)

	// Default to single use when the request doesn't say
	maxUses := req.MaxUses
	if maxUses == 0 {
		maxUses = 1
	}

	token, value, err := h.InviteService.MintInvite(
		ctx,
		service.MintParams{
			ResourceID:       req.ResourceID,
			ResourceName:     req.ResourceName,
			MaxUses:          maxUses,
			TTL:              time.Duration(req.TTLSeconds) * time.Second,
			IntendedIdentity: req.IntendedIdentity,
		},
		userID,
		claims.Resources,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid invite parameters",
			})
		case errors.Is(err, service.ErrPermissionDenied):
			httpx.WriteJSON(w, http.StatusForbidden, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodePermissionDenied,
				ErrorDescription: "You do not manage this resource",
			})
		case errors.Is(err, service.ErrStoreUnavailable):
			writeStoreUnavailable(w)
		default:
			log.Error("failed to mint invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create invite",
			})
		}
		return
	}

	// The value appears here and nowhere else, ever
	httpx.WriteJSON(w, http.StatusOK, invitesdk.MintInviteResponse{
		TokenValue: value,
		Invite:     inviteJSON(token, time.Now()),
	})
}
