package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/service"
	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/invitesdk"
	"github.com/aussiebroadwan/housekey/pkg/slogx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		List Invites Endpoint
//	@Description	List the invites minted for a resource the caller manages, newest first. Records carry
//	@Description	lifecycle state and masked recipient hints only; token values are never listed.
//	@Tags			Invites
//	@Produce		json
//	@Param			resource_id	query		string						true	"Resource to list invites for"
//	@Success		200			{object}	invitesdk.ListInvitesResponse	"invites"
//	@Failure		400			{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		401			{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		403			{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		503			{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	resourceID := r.URL.Query().Get("resource_id")
	if resourceID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "resource_id query parameter is required",
		})
		return
	}

	claims, ok := httpx.ClaimsFromCtx(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidToken,
			ErrorDescription: "Authentication required",
		})
		return
	}

	tokens, err := h.InviteService.ListInvites(ctx, resourceID, claims.Resources)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid list request",
			})
		case errors.Is(err, service.ErrPermissionDenied):
			httpx.WriteJSON(w, http.StatusForbidden, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodePermissionDenied,
				ErrorDescription: "You do not manage this resource",
			})
		case errors.Is(err, service.ErrStoreUnavailable):
			writeStoreUnavailable(w)
		default:
			log.Error("failed to list invites", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeServerError,
				ErrorDescription: "Failed to list invites",
			})
		}
		return
	}

	now := time.Now()
	invites := make([]invitesdk.Invite, 0, len(tokens))
	for _, t := range tokens {
		invites = append(invites, inviteJSON(t, now))
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ListInvitesResponse{Invites: invites})
}
