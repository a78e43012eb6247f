package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	h := Chain(ok, RateLimitByIP(cfg))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows burst then rejects", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do("10.0.0.1:1234").Code)
		require.Equal(t, http.StatusOK, do("10.0.0.1:1234").Code)

		rec := do("10.0.0.1:1234")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do("10.0.0.2:1234").Code)
	})
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.RemoteAddr = "10.0.0.9:4321"
		require.Equal(t, "203.0.113.7", IPKeyExtractor(req))
	})

	t.Run("falls back to RemoteAddr host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.4:9999"
		require.Equal(t, "192.0.2.4", IPKeyExtractor(req))
	})
}
