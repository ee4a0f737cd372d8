package http

import (
	"encoding/json"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type InviteValidateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Validation Endpoint
//	@Description	Check an invite code without consuming a use. Signup forms call this for pre-flight feedback; redemption re-checks atomically regardless.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.InviteValidateRequest	true	"Invite code"
//	@Success		200		{object}	authsdk.InviteValidateResponse	"valid, reason, audience, remaining_uses"
//	@Failure		400		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invites/validate [post].
func (h *InviteValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.InviteValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Code == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "code is required",
		})
		return
	}

	validation, err := h.InviteService.ValidateInvite(ctx, req.Code)
	if err != nil {
		log.Error("failed to validate invite", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to validate invite",
		})
		return
	}

	resp := authsdk.InviteValidateResponse{
		Valid:  validation.Valid,
		Reason: validation.Reason,
	}
	if validation.Valid {
		resp.Audience = string(validation.Invite.Audience)
		resp.RemainingUses = validation.RemainingUses
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
