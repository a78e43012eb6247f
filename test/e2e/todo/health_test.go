package todo_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stackleaf/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, url string) (int, todosdk.HealthResponse) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var health todosdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	return resp.StatusCode, health
}

func TestHealthEndpoints(t *testing.T) {
	svc := startService(t, time.Minute, time.Hour)

	t.Run("livez", func(t *testing.T) {
		status, health := getHealth(t, svc.Client.BaseURL+"/livez")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "ok", health.Status)
		require.NotEmpty(t, health.Version)
		require.Nil(t, health.Checks)
	})

	t.Run("readyz", func(t *testing.T) {
		status, health := getHealth(t, svc.Client.BaseURL+"/readyz")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "ok", health.Status)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
	})
}
