package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/stackleaf/todo/pkg/jwtx"
	"github.com/stackleaf/todo/pkg/slogx"
	"github.com/stackleaf/todo/pkg/todosdk"
)

// AuthnMiddleware gates a route behind a valid access token. It is pure
// verification: the store is never consulted, so a deleted user keeps a
// working token until it expires. Signature failure and expiry collapse
// into the same outward 401.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := bearerToken(r)
			if raw == "" {
				todosdk.ErrMissingAuthToken.WriteError(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("access token verification failed", "err", err)
				todosdk.ErrInvalidAuthToken.WriteError(w)
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				todosdk.ErrInvalidAuthToken.WriteError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the access token from the Authorization header.
// A bare token without the "Bearer " prefix is accepted too.
func bearerToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return authz
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID())
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	return ctx
}
