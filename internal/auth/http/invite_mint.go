package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type InviteMintHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Mint Endpoint
//	@Description	Mint an invite code for the owner or trader audience. Admin-only. The plaintext code appears in this response and nowhere else.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.InviteMintRequest	true	"Invite parameters"
//	@Success		200		{object}	authsdk.InviteMintResponse	"invite_id, code, audience, max_uses, expires_at"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/invites/mint [post].
func (h *InviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.InviteMintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	adminID := httpx.AdminIDFromContext(ctx)
	if adminID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Authentication required",
		})
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != 0 {
		t := time.Unix(req.ExpiresAt, 0).UTC()
		expiresAt = &t
	}

	code, invite, err := h.InviteService.MintInvite(
		ctx,
		domain.InviteAudience(req.Audience),
		adminID,
		req.MaxUses,
		expiresAt,
		req.Note,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Invalid invite parameters",
			})
		default:
			log.Error("failed to mint invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to create invite",
			})
		}
		return
	}

	resp := authsdk.InviteMintResponse{
		InviteID: invite.ID,
		Code:     code,
		Audience: string(invite.Audience),
		MaxUses:  invite.MaxUses,
	}
	if invite.ExpiresAt != nil {
		resp.ExpiresAt = invite.ExpiresAt.Unix()
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
