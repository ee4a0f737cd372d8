package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/slimyai/gatehouse/pkg/jwtx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

// AdminAuthMiddleware guards admin-only endpoints with an HS256 bearer token.
// The subject and role claims are injected into the request context for
// downstream handlers.
func AdminAuthMiddleware(signer *jwtx.Signer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := signer.Verify(raw)
			if err != nil {
				log.Warn("admin token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyAdminID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyAdminRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIDFromContext returns the verified admin subject, if any.
func AdminIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAdminID).(string); ok {
		return v
	}
	return ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
