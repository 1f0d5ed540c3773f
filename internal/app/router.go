package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/stellar-admin/stellar-admin/internal/auth"
	"github.com/stellar-admin/stellar-admin/internal/menu"
	"github.com/stellar-admin/stellar-admin/internal/observability"
	"github.com/stellar-admin/stellar-admin/internal/rbac"
	"github.com/stellar-admin/stellar-admin/internal/roles"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger        *slog.Logger
	Config        *Config
	Table         *rbac.RouteTable
	Authenticator *auth.Authenticator
	Guard         *rbac.Guard
	AuthHandler   *auth.Handler
	MenuHandler   *menu.Handler
	RolesHandler  *roles.Handler
	Metrics       *observability.Metrics
}

// NewRouter constructs the chi router. Every route is registered together
// with its access policy so the guards and the routing table can never
// drift apart.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// register declares the route and its policy in one place. The guards
	// run per route, after matching, so they can look the policy up by the
	// matched pattern.
	register := func(rt chi.Router, method, pattern string, policy rbac.Policy, h http.HandlerFunc) {
		params.Table.Set(method, pattern, policy)
		rt.With(params.Authenticator.Middleware, params.Guard.Middleware).Method(method, pattern, h)
	}

	// Pre-authentication endpoints, rate limited by client IP.
	limit := 10
	if params.Config != nil && params.Config.LoginRateLimit > 0 {
		limit = params.Config.LoginRateLimit
	}
	r.Group(func(gr chi.Router) {
		gr.Use(httprate.Limit(limit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		register(gr, http.MethodGet, "/captchaImage", rbac.Policy{Open: true}, params.AuthHandler.CaptchaImage)
		register(gr, http.MethodPost, "/login", rbac.Policy{Open: true}, params.AuthHandler.Login)
		register(gr, http.MethodPost, "/loginWithCaptcha", rbac.Policy{Open: true}, params.AuthHandler.LoginWithCaptcha)
	})

	register(r, http.MethodPost, "/logout", rbac.Policy{}, params.AuthHandler.Logout)
	register(r, http.MethodGet, "/user/info", rbac.Policy{}, params.AuthHandler.UserInfo)
	register(r, http.MethodGet, "/route", rbac.Policy{}, params.MenuHandler.Routes)

	register(r, http.MethodGet, "/system/menu/list", rbac.Policy{Permission: "system:menu:list"}, params.MenuHandler.List)
	register(r, http.MethodGet, "/system/role/list", rbac.Policy{Permission: "system:role:list"}, params.RolesHandler.List)
	register(r, http.MethodPost, "/system/role", rbac.Policy{Permission: "system:role:add"}, params.RolesHandler.Create)

	return r
}
