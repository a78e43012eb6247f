package todo_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stackleaf/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestTodoCRUD(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	tokens, _ := registerAndLogin(t, svc.Client)
	access := tokens.AccessToken

	created, err := svc.Client.CreateTodo(ctx, access, todosdk.CreateTodoRequest{
		Title:       "buy milk",
		Description: "two litres",
		Type:        "chores",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "buy milk", created.Title)
	require.False(t, created.IsCompleted)

	got, err := svc.Client.GetTodo(ctx, access, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	updated, err := svc.Client.UpdateTodo(ctx, access, created.ID, todosdk.UpdateTodoRequest{
		Title:       "buy oat milk",
		Description: "one litre",
		Type:        "groceries",
	})
	require.NoError(t, err)
	require.Equal(t, "buy oat milk", updated.Title)
	require.Equal(t, "groceries", updated.Type)

	done := true
	patched, err := svc.Client.PatchTodo(ctx, access, created.ID, todosdk.PatchTodoRequest{
		IsCompleted: &done,
	})
	require.NoError(t, err)
	require.True(t, patched.IsCompleted)
	require.Equal(t, "buy oat milk", patched.Title, "patch leaves other fields alone")

	require.NoError(t, svc.Client.DeleteTodo(ctx, access, created.ID))

	_, err = svc.Client.GetTodo(ctx, access, created.ID)
	requireAPIError(t, err, http.StatusNotFound, todosdk.ErrorCodeNotFound)
}

func TestTodoListAndFilter(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	tokens, _ := registerAndLogin(t, svc.Client)
	access := tokens.AccessToken

	_, err := svc.Client.CreateTodo(ctx, access, todosdk.CreateTodoRequest{Title: "buy milk", Type: "chores"})
	require.NoError(t, err)
	mow, err := svc.Client.CreateTodo(ctx, access, todosdk.CreateTodoRequest{Title: "mow lawn", Type: "chores"})
	require.NoError(t, err)
	_, err = svc.Client.CreateTodo(ctx, access, todosdk.CreateTodoRequest{Title: "pay rent", Type: "finance"})
	require.NoError(t, err)

	done := true
	_, err = svc.Client.PatchTodo(ctx, access, mow.ID, todosdk.PatchTodoRequest{IsCompleted: &done})
	require.NoError(t, err)

	all, err := svc.Client.ListTodos(ctx, access)
	require.NoError(t, err)
	require.Len(t, all, 3)

	chores, err := svc.Client.FilterTodos(ctx, access, nil, "chores")
	require.NoError(t, err)
	require.Len(t, chores, 2)

	completedChores, err := svc.Client.FilterTodos(ctx, access, &done, "chores")
	require.NoError(t, err)
	require.Len(t, completedChores, 1)
	require.Equal(t, mow.ID, completedChores[0].ID)

	unfiltered, err := svc.Client.FilterTodos(ctx, access, nil, "")
	require.NoError(t, err)
	require.Len(t, unfiltered, 3)
}

func TestTodosRequireAuthentication(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.Client.ListTodos(ctx, "")
		requireAPIError(t, err, http.StatusUnauthorized, todosdk.ErrorCodeMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Client.ListTodos(ctx, "not-a-jwt")
		requireAPIError(t, err, http.StatusUnauthorized, todosdk.ErrorCodeInvalidToken)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		tokens, _ := registerAndLogin(t, svc.Client)

		_, err := svc.Client.ListTodos(ctx, tokens.RefreshToken)
		requireAPIError(t, err, http.StatusUnauthorized, todosdk.ErrorCodeInvalidToken)
	})
}

func TestTodosAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	alice, _ := registerAndLogin(t, svc.Client)
	bob, _ := registerAndLogin(t, svc.Client)

	created, err := svc.Client.CreateTodo(ctx, alice.AccessToken, todosdk.CreateTodoRequest{
		Title: "alice's secret",
	})
	require.NoError(t, err)

	// Bob sees an empty list and cannot touch Alice's todo by id.
	list, err := svc.Client.ListTodos(ctx, bob.AccessToken)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = svc.Client.GetTodo(ctx, bob.AccessToken, created.ID)
	requireAPIError(t, err, http.StatusNotFound, todosdk.ErrorCodeNotFound)

	err = svc.Client.DeleteTodo(ctx, bob.AccessToken, created.ID)
	requireAPIError(t, err, http.StatusNotFound, todosdk.ErrorCodeNotFound)

	// Alice still has it.
	_, err = svc.Client.GetTodo(ctx, alice.AccessToken, created.ID)
	require.NoError(t, err)
}

func TestTodoValidation(t *testing.T) {
	ctx := context.Background()
	svc := startService(t, time.Minute, time.Hour)

	tokens, _ := registerAndLogin(t, svc.Client)
	access := tokens.AccessToken

	t.Run("create requires a title", func(t *testing.T) {
		_, err := svc.Client.CreateTodo(ctx, access, todosdk.CreateTodoRequest{Description: "no title"})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeValidation)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		created, err := svc.Client.CreateTodo(ctx, access, todosdk.CreateTodoRequest{Title: "something"})
		require.NoError(t, err)

		_, err = svc.Client.PatchTodo(ctx, access, created.ID, todosdk.PatchTodoRequest{})
		requireAPIError(t, err, http.StatusBadRequest, todosdk.ErrorCodeValidation)
	})
}
