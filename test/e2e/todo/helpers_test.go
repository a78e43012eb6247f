package todo_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stackleaf/todo/internal/todo/app"
	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for todo service end-to-end tests. Each test boots the full
 * application (migrations, services, router) against its own database file
 * and talks to it through the SDK client over an in-process HTTP server.
 */

const (
	testAccessSecret  = "e2e-access-secret"
	testRefreshSecret = "e2e-refresh-secret"
	testPassword      = "Passw0rd!"
)

var userSeq atomic.Int64

// TestMain loosens the rate-limit profiles before any router captures them;
// the dedicated rate-limit test restores a strict profile locally.
func TestMain(m *testing.M) {
	loose := httpx.RateLimitConfig{
		RequestsPerWindow: 10000,
		Window:            time.Minute,
		Burst:             10000,
	}
	httpx.StrictLimit = loose
	httpx.ModerateLimit = loose
	httpx.LenientLimit = loose

	os.Exit(m.Run())
}

type testService struct {
	Client *todosdk.Client
	App    *app.Application
}

// startService boots the application with the given token TTLs and mounts
// it on an in-process server.
func startService(t *testing.T, accessTTL, refreshTTL time.Duration) *testService {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TODO_DATABASE_FILE", filepath.Join(dir, "todo.db"))
	t.Setenv("TODO_PEPPER_FILE", filepath.Join(dir, "pepper"))
	t.Setenv("TODO_ACCESS_SECRET", testAccessSecret)
	t.Setenv("TODO_REFRESH_SECRET", testRefreshSecret)
	t.Setenv("TODO_ACCESS_TTL", accessTTL.String())
	t.Setenv("TODO_REFRESH_TTL", refreshTTL.String())
	t.Setenv("LOG_LEVEL", "error")

	application, err := app.New(app.LoadConfig())
	require.NoError(t, err)

	server := httptest.NewServer(application.Router())
	t.Cleanup(server.Close)

	return &testService{
		Client: todosdk.NewClient(server.URL),
		App:    application,
	}
}

// newUser returns a unique username/email pair for this test run.
func newUser() (username, email string) {
	n := userSeq.Add(1)
	username = fmt.Sprintf("user%d", n)
	email = fmt.Sprintf("user%d@example.com", n)
	return username, email
}

// registerAndLogin creates an account and logs it in, returning the token
// pair plus the username used.
func registerAndLogin(t *testing.T, c *todosdk.Client) (*todosdk.TokenResponse, string) {
	t.Helper()
	ctx := context.Background()

	username, email := newUser()
	_, err := c.Register(ctx, todosdk.RegisterRequest{
		Username: username,
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)

	tokens, err := c.Login(ctx, todosdk.LoginRequest{
		Identifier: username,
		Password:   testPassword,
	})
	require.NoError(t, err)

	return tokens, username
}

// requireAPIError asserts err is an *APIError with the given status and code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *todosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
