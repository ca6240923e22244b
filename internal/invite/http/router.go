package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/housekey/internal/invite/service"
	"github.com/aussiebroadwan/housekey/internal/invite/store"
	"github.com/aussiebroadwan/housekey/pkg/httpx"
	"github.com/aussiebroadwan/housekey/pkg/jwtx"
	"github.com/aussiebroadwan/housekey/pkg/slogx"

	_ "github.com/aussiebroadwan/housekey/api/invite" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys           *jwtx.KeySet
	verifier       jwtx.Verifier
	buildVersion   string
	startTime      time.Time
	logger         *slog.Logger
	allowedOrigins []string

	store            store.Store
	InviteService    *service.InviteService
	RateLimitService *service.RateLimitService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	allowedOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		keys:           keys,
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		allowedOrigins: allowedOrigins,
		store:          st,
		logger:         logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Housekey Invite Service API
//	@version		0.1.0
//	@description	Invite token lifecycle service: mint expiring, capacity-limited invite tokens for
//	@description	resources, validate them without consuming a use, and redeem them for access grants.
//	@description
//	@description				Token values are shown once at mint time and stored only as salted digests.
//	@description				Callers authenticate with JWT access tokens issued by a trusted identity provider.
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/housekey
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	mintHandler := &InviteMintHandler{InviteService: r.InviteService}
	validateHandler := &InviteValidateHandler{InviteService: r.InviteService, RateLimits: r.RateLimitService}
	acceptHandler := &InviteAcceptHandler{InviteService: r.InviteService, RateLimits: r.RateLimitService}
	revokeHandler := &InviteRevokeHandler{InviteService: r.InviteService}
	listHandler := &InviteListHandler{InviteService: r.InviteService}

	// POST /v1/invites - mint (requires invites:write) - moderate rate limit by user
	r.Mux.Handle("POST /v1/invites",
		httpx.Chain(mintHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /v1/invites - list (requires invites:read) - moderate rate limit by user
	r.Mux.Handle("GET /v1/invites",
		httpx.Chain(listHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:read"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /v1/invites/validate - public probe surface.
	// The in-process IP limit sheds floods cheaply; the handler adds the
	// durable per-caller and per-token budgets that survive restarts.
	// CORS so browser onboarding pages can preview invites directly.
	r.Mux.Handle("POST /v1/invites/validate",
		httpx.Chain(validateHandler,
			httpx.CORSMiddleware(r.allowedOrigins),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/invites/accept - authenticated redemption, strict limits
	r.Mux.Handle("POST /v1/invites/accept",
		httpx.Chain(acceptHandler,
			httpx.CORSMiddleware(r.allowedOrigins),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// POST /v1/invites/{id}/revoke - revoke (requires invites:write)
	r.Mux.Handle("POST /v1/invites/{id}/revoke",
		httpx.Chain(revokeHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("invites:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
