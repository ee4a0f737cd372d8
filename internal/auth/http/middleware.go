package http

import (
	"context"
	"net/http"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/pkg/authsdk"
	"github.com/slimyai/gatehouse/pkg/httpx"
)

type sessionCtxKey struct{}

// RequireSession validates the session cookie and rejects unauthenticated
// requests with the terminal state as the error code. The authenticated user
// is available downstream via SessionUserFromContext.
func RequireSession(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := sessions.ValidateSession(r.Context(), sessionTokenFromRequest(r))
			if err != nil {
				httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
					Error:            "server_error",
					ErrorDescription: "Failed to validate session",
				})
				return
			}
			if !result.Authenticated {
				httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
					Error:            string(result.Error),
					ErrorDescription: "Authentication required",
				})
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionUserFromContext returns the validated session placed in the context
// by RequireSession.
func SessionUserFromContext(ctx context.Context) (domain.AuthResult, bool) {
	result, ok := ctx.Value(sessionCtxKey{}).(domain.AuthResult)
	return result, ok
}
