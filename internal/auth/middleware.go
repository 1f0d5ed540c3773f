package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stellar-admin/stellar-admin/internal/observability"
	"github.com/stellar-admin/stellar-admin/internal/platform/httpx"
	"github.com/stellar-admin/stellar-admin/internal/rbac"
	"github.com/stellar-admin/stellar-admin/internal/session"
	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// TokenSource reads the session-of-record's copy of the current token.
type TokenSource interface {
	Token(ctx context.Context, userID int64) (string, error)
}

// Authenticator is the request-time authentication guard. A request passes
// only when the presented bearer token carries a valid signature AND equals
// the session store's current token for that subject. The equality check is
// what invalidates still-cryptographically-valid tokens after a re-login.
type Authenticator struct {
	codec    *TokenCodec
	sessions TokenSource
	table    *rbac.RouteTable
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewAuthenticator constructs an Authenticator. metrics may be nil.
func NewAuthenticator(codec *TokenCodec, sessions TokenSource, table *rbac.RouteTable, logger *slog.Logger, metrics *observability.Metrics) *Authenticator {
	return &Authenticator{codec: codec, sessions: sessions, table: table, logger: logger, metrics: metrics}
}

// Middleware authenticates the request and attaches the subject identifier
// to the context. Routes registered as open bypass the guard entirely.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		policy := a.table.Lookup(r.Method, chi.RouteContext(r.Context()).RoutePattern())
		if policy.Open {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := bearerToken(r)
		if !ok {
			a.metrics.ObserveGuardRejection("no_token")
			httpx.Error(w, shared.ErrNoAuthorization)
			return
		}
		claims, err := a.codec.Verify(token)
		if err != nil {
			a.metrics.ObserveGuardRejection("token_invalid")
			httpx.Error(w, shared.ErrTokenInvalid)
			return
		}
		current, err := a.sessions.Token(r.Context(), claims.UID)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				a.metrics.ObserveGuardRejection("superseded")
				httpx.Error(w, shared.ErrSessionSuperseded)
				return
			}
			if a.logger != nil {
				a.logger.Error("load session token", slog.Int64("user_id", claims.UID), slog.Any("error", err))
			}
			httpx.Error(w, err)
			return
		}
		if current != token {
			a.metrics.ObserveGuardRejection("superseded")
			httpx.Error(w, shared.ErrSessionSuperseded)
			return
		}
		ctx := shared.ContextWithSubject(r.Context(), claims.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
