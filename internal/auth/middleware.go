package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bizdir/bizdir/internal/platform/httpx"
)

type contextKey struct{}

var identityKey contextKey

// ContextWithIdentity attaches the resolved admin identity to ctx.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the admin identity or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey).(*Identity)
	return identity
}

// BearerToken extracts the bearer token from the Authorization header,
// empty when absent.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// Middleware gates routes behind a valid admin token.
type Middleware struct {
	Tokens TokenStore
	Logger *slog.Logger
}

// Require returns a middleware that resolves the bearer token and
// rejects the request with 401 and the given message when it is
// missing or unknown. Routes pass their own user-facing message.
func (m Middleware) Require(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				httpx.Message(w, http.StatusUnauthorized, message)
				return
			}
			identity, err := m.Tokens.Resolve(r.Context(), token)
			if err != nil {
				m.Logger.Error("resolve token", slog.Any("error", err))
				httpx.Message(w, http.StatusInternalServerError, "Lỗi hệ thống")
				return
			}
			if identity == nil {
				httpx.Message(w, http.StatusUnauthorized, message)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}
