package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/service"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/pkg/httpx"
	"github.com/slimyai/gatehouse/pkg/jwtx"
	"github.com/slimyai/gatehouse/pkg/slogx"

	_ "github.com/slimyai/gatehouse/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	adminSigner   *jwtx.Signer
	secureCookies bool
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store          store.Store
	InviteService  *service.InviteService
	SessionService *service.SessionService
	LoginService   *service.LoginService
	ResetService   *service.ResetService
	TOTPService    *service.TOTPService
}

func NewRouter(
	adminSigner *jwtx.Signer,
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		adminSigner:   adminSigner,
		secureCookies: secureCookies,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPasswordReset()
	r.registerTOTP()
	r.registerInvites()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatehouse Authentication API
//	@version		0.1.0
//	@description	Invite, session and credential service for the slimy.ai trader application.
//	@description
//	@description				Sessions are carried in an httpOnly cookie. Administrative endpoints
//	@description				require an HS256 bearer token.
//
//	@contact.name				slimy.ai
//	@contact.url				https://github.com/slimyai/gatehouse
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	AdminAuth
//	@in							header
//	@name						Authorization
//	@description				Admin JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{
		LoginService:  r.LoginService,
		SecureCookies: r.secureCookies,
	}
	// POST /login - strict rate limit by IP (authentication attempts); the
	// persisted per-username ledger applies on top of this.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logoutHandler := &LogoutHandler{
		SessionService: r.SessionService,
		SecureCookies:  r.secureCookies,
	}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /session - validated on every page load, lenient limit.
	sessionHandler := &SessionHandler{SessionService: r.SessionService}
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(sessionHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /register - public signup via trader invite, strict limit.
	registerHandler := &RegisterHandler{
		InviteService:  r.InviteService,
		SessionService: r.SessionService,
		SecureCookies:  r.secureCookies,
	}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPasswordReset() {
	requestHandler := &ResetRequestHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /v1/auth/password-reset/request",
		httpx.Chain(requestHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	executeHandler := &ResetExecuteHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /v1/auth/password-reset/execute",
		httpx.Chain(executeHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTOTP() {
	enrollHandler := &TOTPEnrollHandler{TOTPService: r.TOTPService}
	r.Mux.Handle("POST /v1/auth/totp/enroll",
		httpx.Chain(enrollHandler,
			RequireSession(r.SessionService),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	verifyHandler := &TOTPVerifyHandler{TOTPService: r.TOTPService}
	r.Mux.Handle("POST /v1/auth/totp/verify",
		httpx.Chain(verifyHandler,
			RequireSession(r.SessionService),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvites() {
	// Admin-only invite management, gated by the HS256 bearer token.
	mintHandler := &InviteMintHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invites/mint",
		httpx.Chain(mintHandler,
			httpx.AdminAuthMiddleware(r.adminSigner),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	listHandler := &InviteListHandler{InviteService: r.InviteService}
	r.Mux.Handle("GET /v1/invites",
		httpx.Chain(listHandler,
			httpx.AdminAuthMiddleware(r.adminSigner),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	revokeHandler := &InviteRevokeHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invites/{id}/revoke",
		httpx.Chain(revokeHandler,
			httpx.AdminAuthMiddleware(r.adminSigner),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Public, read-only code check used by signup forms. Strict limit keeps
	// it from becoming a code oracle.
	validateHandler := &InviteValidateHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invites/validate",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Owner redemption allowlists an email on the admin product.
	redeemHandler := &OwnerRedeemHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invites/redeem",
		httpx.Chain(redeemHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
