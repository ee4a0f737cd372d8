package http

import (
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

type LogoutHandler struct {
	SessionService *service.SessionService
	SecureCookies  bool
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke the caller's session and clear the cookie. Always succeeds; logging out without a session is a no-op.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"authenticated=false"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := sessionTokenFromRequest(r)
	if token != "" {
		result, err := h.SessionService.ValidateSession(ctx, token)
		if err != nil {
			log.Error("failed to resolve session for logout", "err", err)
		} else if result.SessionID != "" {
			// Revoke even expired sessions; the caller asked to be logged out.
			if err := h.SessionService.RevokeSession(ctx, result.SessionID); err != nil {
				log.Error("failed to revoke session on logout", "err", err)
			}
		}
	}

	clearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{Authenticated: false})
}
