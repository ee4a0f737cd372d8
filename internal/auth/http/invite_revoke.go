package http

import (
	"errors"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type InviteRevokeHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Revoke Endpoint
//	@Description	Permanently invalidate an invite. Admin-only. Revocation beats every other state; a revoked invite can never be redeemed again.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204	"no content"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/invites/{id}/revoke [post].
func (h *InviteRevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inviteID := r.PathValue("id")
	if err := h.InviteService.RevokeInvite(ctx, inviteID); err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, authsdk.ErrorResponse{
				Error:            "not_found",
				ErrorDescription: "Invite not found or already revoked",
			})
			return
		}
		log.Error("failed to revoke invite", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to revoke invite",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
