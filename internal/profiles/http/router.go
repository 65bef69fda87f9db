package http

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/aussiebroadwan/profiles/api/profiles" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

// RateLimits groups the per-route limiter settings.
type RateLimits struct {
	Signup        httpx.RateLimitConfig
	Login         httpx.RateLimitConfig
	Authenticated httpx.RateLimitConfig
	Public        httpx.RateLimitConfig
}

// DefaultRateLimits applies RATELIMIT_{SIGNUP,LOGIN,AUTHENTICATED,PUBLIC}_*
// overrides on top of the httpx profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Signup:        httpx.ParseRateLimitFromEnv("SIGNUP", httpx.StrictLimit),
		Login:         httpx.ParseRateLimitFromEnv("LOGIN", httpx.StrictLimit),
		Authenticated: httpx.ParseRateLimitFromEnv("AUTHENTICATED", httpx.ModerateLimit),
		Public:        httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	verifier     *jwtx.Verifier
	issuer       string
	tokenTTL     time.Duration
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Limits         RateLimits
	AccountService *service.AccountService
}

func NewRouter(
	signer *jwtx.Signer,
	issuer string,
	tokenTTL time.Duration,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     jwtx.NewVerifier(signer, issuer),
		issuer:       issuer,
		tokenTTL:     tokenTTL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		Limits:       DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP applies the global middleware chain.
//
//	@title			Profiles Account Service API
//	@version		0.1.0
//	@description	Email-login account service: signup, login and account lookup. Session tokens are EdDSA-signed JWTs.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/profiles
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
//	@description				Session token from /v1/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	signup := &SignupHandler{AccountService: r.AccountService}
	list := &ListAccountsHandler{AccountService: r.AccountService}

	// Public signup, strict limit by IP.
	r.Mux.Handle("POST /v1/accounts",
		httpx.Chain(signup,
			httpx.RateLimitByIP(r.Limits.Signup),
		),
	)

	r.Mux.Handle("GET /v1/accounts",
		httpx.Chain(list,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequirePermission(service.PermViewAccounts, r.AccountService.HasPermission),
			httpx.RateLimitBySubject(r.Limits.Authenticated),
		),
	)
}

func (r *Router) registerSession() {
	login := &LoginHandler{
		AccountService: r.AccountService,
		Signer:         r.signer,
		Issuer:         r.issuer,
		TTL:            r.tokenTTL,
	}
	me := &MeHandler{AccountService: r.AccountService}

	// Strict limit keyed on IP + email.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(login,
			httpx.RateLimitByIPAndJSONField(r.Limits.Login, "email"),
		),
	)

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(r.Limits.Authenticated),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}
