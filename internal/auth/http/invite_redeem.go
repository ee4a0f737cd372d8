package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type OwnerRedeemHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Owner Invite Redemption Endpoint
//	@Description	Consume one use of an owner invite and allowlist the email for the admin product. The use and the allowlist entry commit together or not at all.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.OwnerRedeemRequest	true	"Invite code and email"
//	@Success		200		{object}	authsdk.OwnerRedeemResponse	"email"
//	@Failure		400		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/invites/redeem [post].
func (h *OwnerRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.OwnerRedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	entry, err := h.InviteService.RedeemOwnerInvite(ctx, req.Code, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "code and email are required",
			})
		case errors.Is(err, service.ErrInviteNotFound), errors.Is(err, service.ErrWrongAudience):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            "invalid_invite",
				ErrorDescription: "Invite code is not valid",
			})
		case errors.Is(err, service.ErrEmailAlreadyListed):
			httpx.WriteJSON(w, http.StatusConflict, authsdk.ErrorResponse{
				Error:            "already_listed",
				ErrorDescription: "Email is already allowlisted",
			})
		default:
			log.Error("owner redemption failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "Failed to redeem invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.OwnerRedeemResponse{Email: entry.Email})
}
