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

type InviteRevokeHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Revoke Invite Endpoint
//	@Description	Permanently disable an invite token by its id. Revocation is final and wins over every
//	@Description	other state; revoking an already-revoked invite succeeds without changing anything.
//	@Tags			Invites
//	@Produce		json
//	@Param			id	path		string							true	"Invite token id"
//	@Success		200	{object}	invitesdk.RevokeInviteResponse	"invite"
//	@Failure		401	{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		403	{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		404	{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Failure		503	{object}	invitesdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/{id}/revoke [post].
func (h *InviteRevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	tokenID := r.PathValue("id")
	if tokenID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ErrorResponse{
			Error:            invitesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invite id is required",
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

	token, err := h.InviteService.RevokeInvite(ctx, tokenID, claims.Resources)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeInviteNotFound,
				ErrorDescription: "No invite with that id",
			})
		case errors.Is(err, service.ErrPermissionDenied):
			httpx.WriteJSON(w, http.StatusForbidden, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodePermissionDenied,
				ErrorDescription: "You do not manage this resource",
			})
		case errors.Is(err, service.ErrStoreUnavailable):
			writeStoreUnavailable(w)
		default:
			log.Error("failed to revoke invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
				Error:            invitesdk.ErrorCodeServerError,
				ErrorDescription: "Failed to revoke invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.RevokeInviteResponse{
		Invite: inviteJSON(token, time.Now()),
	})
}
