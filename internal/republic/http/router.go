package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/republichq/republic/internal/republic/service"
	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/jwtx"
	"github.com/republichq/republic/pkg/metricsx"
	"github.com/republichq/republic/pkg/slogx"

	_ "github.com/republichq/republic/api/republic" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// LoginPath is where RequireSession sends anonymous callers.
const LoginPath = "/v1/login"

// Sessions signs and verifies session cookies.
type Sessions interface {
	jwtx.Signer
	jwtx.Verifier
	Issuer() string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     Sessions
	cookie       httpx.CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metricsx.Metrics

	AccountService *service.AccountService
	ResetService   *service.ResetService
	ClickService   *service.ClickService
}

// NewRouter builds a router with the global middleware in place. Every
// request gets a logger, a deadline and its own store scope, in that order.
func NewRouter(
	sessions Sessions,
	cookie httpx.CookieConfig,
	buildVersion string,
	st store.Store,
	metrics *metricsx.Metrics,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		cookie:       cookie,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		metrics:      metrics,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Timeout(requestTimeout),
		store.ScopeMiddleware(st),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerPasswordReset()
	r.registerClicks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Republic Listings API
//	@version		0.1.0
//	@description	Accounts, password reset and click tracking for the Republic real-estate listings site.
//	@description
//	@description	Authenticated endpoints read a signed session cookie set by /v1/login. Requests without a valid session are redirected (303) to /v1/login.
//
//	@contact.name	Republic Team
//	@contact.url	https://github.com/republichq/republic
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						session
//	@description				HS256-signed session token set by /v1/login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, instrumented with the pattern as route label.
func (r *Router) handle(pattern string, h http.Handler) {
	if r.metrics != nil {
		h = r.metrics.Instrument(pattern, h)
	}
	r.Mux.Handle(pattern, h)
}

// session wraps h behind the login gate and the per-user limit.
func (r *Router) session(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.RequireSession(r.sessions, LoginPath),
		httpx.RateLimitByUser(httpx.SessionLimit),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountHandler{
		AccountService: r.AccountService,
		Sessions:       r.sessions,
		Cookie:         r.cookie,
	}

	// Public signup - strict limit by IP
	r.handle("POST /v1/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Login - strict limit by IP + email to slow down password guessing
	r.handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, "email"),
		),
	)

	r.handle("POST /v1/logout", r.session(http.HandlerFunc(h.HandleLogout)))
	r.handle("GET /v1/profile", r.session(http.HandlerFunc(h.HandleProfile)))
	r.handle("POST /v1/profile", r.session(http.HandlerFunc(h.HandleUpdateProfile)))
	r.handle("POST /v1/profile/deletion-request", r.session(http.HandlerFunc(h.HandleDeletionRequest)))
}

func (r *Router) registerPasswordReset() {
	h := &PasswordResetHandler{ResetService: r.ResetService}

	// Every reset endpoint sends mail or probes a secret token: strict limits
	r.handle("POST /v1/password/forgot",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIPAndField(httpx.StrictLimit, "email"),
		),
	)
	r.handle("GET /v1/password/reset/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleCheck),
			httpx.RateLimitByIP(httpx.SessionLimit),
		),
	)
	r.handle("POST /v1/password/reset/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerClicks() {
	h := &TrackClickHandler{ClickService: r.ClickService}

	// Anonymous beacon fired from listing pages - generous limit
	r.handle("POST /track_click",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
