package http

import (
	"errors"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite List Endpoint
//	@Description	List invites for an audience, newest first. Admin-only. Codes are never included; only hashes exist server-side.
//	@Tags			Invitations
//	@Produce		json
//	@Param			audience	query		string						true	"owner or trader"
//	@Success		200			{object}	authsdk.InviteListResponse	"invites"
//	@Failure		400			{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		401			{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500			{object}	authsdk.ErrorResponse		"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	audience := domain.InviteAudience(r.URL.Query().Get("audience"))
	invites, err := h.InviteService.ListInvites(ctx, audience)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInviteRequest) {
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "audience must be owner or trader",
			})
			return
		}
		log.Error("failed to list invites", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to list invites",
		})
		return
	}

	resp := authsdk.InviteListResponse{Invites: make([]authsdk.InviteSummary, 0, len(invites))}
	for _, inv := range invites {
		summary := authsdk.InviteSummary{
			ID:        inv.ID,
			Audience:  string(inv.Audience),
			CreatedBy: inv.CreatedBy,
			MaxUses:   inv.MaxUses,
			UseCount:  inv.UseCount,
			Note:      inv.Note,
			CreatedAt: inv.CreatedAt.Unix(),
		}
		if inv.ExpiresAt != nil {
			summary.ExpiresAt = inv.ExpiresAt.Unix()
		}
		if inv.RevokedAt != nil {
			summary.RevokedAt = inv.RevokedAt.Unix()
		}
		if inv.UsedAt != nil {
			summary.UsedAt = inv.UsedAt.Unix()
		}
		resp.Invites = append(resp.Invites, summary)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
