package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stackleaf/todo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	keys := jwtx.NewHS256([]byte("authn-test-secret"), "todo-test")
	otherKeys := jwtx.NewHS256([]byte("some-other-secret"), "todo-test")

	var gotUserID, gotUsername string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromCtx(r.Context())
		gotUsername = UsernameFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Chain(inner, AuthnMiddleware(keys))

	do := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, err := keys.Sign(jwtx.NewClaims("u-123", "alice", time.Minute, "todo-test", time.Now().UTC()))
		require.NoError(t, err)

		rec := do("Bearer " + token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u-123", gotUserID)
		require.Equal(t, "alice", gotUsername)
	})

	t.Run("bare token without Bearer prefix accepted", func(t *testing.T) {
		token, err := keys.Sign(jwtx.NewClaims("u-123", "alice", time.Minute, "todo-test", time.Now().UTC()))
		require.NoError(t, err)

		rec := do(token)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := do("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "missing_token")
	})

	t.Run("expired token collapses to invalid", func(t *testing.T) {
		token, err := keys.Sign(jwtx.NewClaims("u-123", "alice", time.Second, "todo-test", time.Now().UTC().Add(-time.Hour)))
		require.NoError(t, err)

		rec := do("Bearer " + token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})

	t.Run("wrong signing secret collapses to invalid", func(t *testing.T) {
		token, err := otherKeys.Sign(jwtx.NewClaims("u-123", "alice", time.Minute, "todo-test", time.Now().UTC()))
		require.NoError(t, err)

		rec := do("Bearer " + token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})
}
