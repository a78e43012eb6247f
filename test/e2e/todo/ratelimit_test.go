package todo_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestLoginRateLimit(t *testing.T) {
	ctx := context.Background()

	// Tighten the strict profile for just this test; the router captures it
	// at route registration, so set it before booting the service.
	saved := httpx.StrictLimit
	httpx.StrictLimit = httpx.RateLimitConfig{
		RequestsPerWindow: 3,
		Window:            time.Minute,
		Burst:             3,
	}
	t.Cleanup(func() { httpx.StrictLimit = saved })

	svc := startService(t, time.Minute, time.Hour)

	// Burn through the burst with failing logins.
	for range 3 {
		_, err := svc.Client.Login(ctx, todosdk.LoginRequest{
			Identifier: "no-such-user",
			Password:   "wrong",
		})
		requireAPIError(t, err, http.StatusUnauthorized, todosdk.ErrorCodeInvalidCredentials)
	}

	// The next attempt is rejected before credentials are even checked.
	_, err := svc.Client.Login(ctx, todosdk.LoginRequest{
		Identifier: "no-such-user",
		Password:   "wrong",
	})

	var apiErr *todosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
