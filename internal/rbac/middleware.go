package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stellar-admin/stellar-admin/internal/observability"
	"github.com/stellar-admin/stellar-admin/internal/platform/httpx"
	"github.com/stellar-admin/stellar-admin/internal/session"
	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// PermissionCache reads the cached permission set written at login. The
// guard never recomputes permissions per request.
type PermissionCache interface {
	Permissions(ctx context.Context, userID int64) ([]string, error)
}

// Guard is the authorization middleware. It runs after the authentication
// guard and checks the route's required permission against the subject's
// cached permission set.
type Guard struct {
	cache   PermissionCache
	table   *RouteTable
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewGuard constructs a Guard. metrics may be nil.
func NewGuard(cache PermissionCache, table *RouteTable, logger *slog.Logger, metrics *observability.Metrics) *Guard {
	return &Guard{cache: cache, table: table, logger: logger, metrics: metrics}
}

// Middleware enforces the registered permission for the matched route.
// Routes without a permission annotation pass unconditionally. Matching is
// exact-string-or-wildcard, not hierarchical.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		policy := g.table.Lookup(r.Method, chi.RouteContext(r.Context()).RoutePattern())
		if policy.Open || policy.Permission == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, ok := shared.SubjectFromContext(r.Context())
		if !ok {
			httpx.Error(w, shared.ErrNoAuthorization)
			return
		}
		perms, err := g.cache.Permissions(r.Context(), userID)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				httpx.Error(w, shared.ErrSessionSuperseded)
				return
			}
			if g.logger != nil {
				g.logger.Error("load permission cache", slog.Int64("user_id", userID), slog.Any("error", err))
			}
			httpx.Error(w, err)
			return
		}
		if !hasPermission(perms, policy.Permission) {
			g.metrics.ObserveGuardRejection("no_permission")
			if g.logger != nil {
				g.logger.Warn("permission denied",
					slog.Int64("user_id", userID),
					slog.String("required", policy.Permission))
			}
			httpx.Error(w, shared.ErrNoPermission)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasPermission(granted []string, required string) bool {
	for _, p := range granted {
		if p == WildcardPermission || p == required {
			return true
		}
	}
	return false
}
