package todo_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stackleaf/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	t.Run("missing fields name the first absent one", func(t *testing.T) {
		_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
			Email:    "a@example.com",
			Password: testPassword,
		})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeValidation)

		var apiErr *todosdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "username is required", apiErr.Description)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		username, _ := newUser()
		_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
			Username: username,
			Email:    "not-an-email",
			Password: testPassword,
		})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeValidation)
	})

	t.Run("rejects short password", func(t *testing.T) {
		username, email := newUser()
		_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
			Username: username,
			Email:    email,
			Password: "abc",
		})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeValidation)
	})
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	username, email := newUser()
	_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
		Username: username,
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)

	t.Run("username conflict", func(t *testing.T) {
		_, otherEmail := newUser()
		_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
			Username: username,
			Email:    otherEmail,
			Password: testPassword,
		})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeConflict)
	})

	t.Run("email conflict", func(t *testing.T) {
		otherUsername, _ := newUser()
		_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
			Username: otherUsername,
			Email:    email,
			Password: testPassword,
		})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	username, email := newUser()
	_, err := svc.Client.Register(ctx, todosdk.RegisterRequest{
		Username: username,
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		tokens, err := svc.Client.Login(ctx, todosdk.LoginRequest{
			Identifier: username,
			Password:   testPassword,
		})
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("by email", func(t *testing.T) {
		tokens, err := svc.Client.Login(ctx, todosdk.LoginRequest{
			Identifier: email,
			Password:   testPassword,
		})
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Client.Login(ctx, todosdk.LoginRequest{
			Identifier: "no-such-user",
			Password:   testPassword,
		})
		_, errWrongPw := svc.Client.Login(ctx, todosdk.LoginRequest{
			Identifier: username,
			Password:   "wrong-password",
		})

		requireAPIError(t, errUnknown, http.StatusUnauthorized, todosdk.ErrorCodeInvalidCredentials)
		requireAPIError(t, errWrongPw, http.StatusUnauthorized, todosdk.ErrorCodeInvalidCredentials)
		require.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})
}

func TestRefreshFlow(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	tokens, _ := registerAndLogin(t, svc.Client)

	t.Run("exchanges refresh for a new access token", func(t *testing.T) {
		resp, err := svc.Client.Refresh(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		// The refresh token survives the exchange.
		again, err := svc.Client.Refresh(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, again.AccessToken)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		_, err := svc.Client.Refresh(ctx, "")
		requireAPIError(t, err, http.StatusUnauthorized, todosdk.ErrorCodeMissingToken)
	})

	t.Run("unknown token is a 403", func(t *testing.T) {
		_, err := svc.Client.Refresh(ctx, "never-issued-token")
		requireAPIError(t, err, http.StatusForbidden, todosdk.ErrorCodeInvalidToken)
	})
}

func TestLoginSupersedesEarlierSession(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	first, username := registerAndLogin(t, svc.Client)

	second, err := svc.Client.Login(ctx, todosdk.LoginRequest{
		Identifier: username,
		Password:   testPassword,
	})
	require.NoError(t, err)

	_, err = svc.Client.Refresh(ctx, first.RefreshToken)
	requireAPIError(t, err, http.StatusForbidden, todosdk.ErrorCodeInvalidToken)

	_, err = svc.Client.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestAccessTokenExpiry(t *testing.T) {
	ctx := context.Background()

	// Access tokens live 1s; jwt numeric dates have second granularity so
	// anything shorter flakes.
	svc := startService(t, time.Second, time.Hour)

	tokens, _ := registerAndLogin(t, svc.Client)

	_, err := svc.Client.ListTodos(ctx, tokens.AccessToken)
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)

	_, err = svc.Client.ListTodos(ctx, tokens.AccessToken)
	requireAPIError(t, err, http.StatusUnauthorized, todosdk.ErrorCodeInvalidToken)

	// The refresh token still works, yielding a usable access token.
	resp, err := svc.Client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)

	_, err = svc.Client.ListTodos(ctx, resp.AccessToken)
	require.NoError(t, err)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	tokens, _ := registerAndLogin(t, svc.Client)

	resp, err := svc.Client.Logout(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Message)

	// Logout revokes nothing; both tokens keep working until expiry.
	_, err = svc.Client.ListTodos(ctx, tokens.AccessToken)
	require.NoError(t, err)

	_, err = svc.Client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
}
