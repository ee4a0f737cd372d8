package http

import (
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Session Introspection Endpoint
//	@Description	Report the state of the caller's session cookie. Returns 200 in every case; rejection is carried in the body so clients need no error handling to render a logged-out state.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"authenticated, user, error"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	result, err := h.SessionService.ValidateSession(ctx, sessionTokenFromRequest(r))
	if err != nil {
		log.Error("failed to validate session", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to validate session",
		})
		return
	}

	resp := authsdk.SessionResponse{
		Authenticated: result.Authenticated,
		Error:         string(result.Error),
	}
	if result.Authenticated {
		resp.User = &authsdk.UserInfo{
			ID:       result.User.ID,
			Username: result.User.Username,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
