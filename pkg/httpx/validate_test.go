package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireFields(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Chain(ok, RequireFields("username", "email", "password"))

	t.Run("all fields present", func(t *testing.T) {
		rec := postJSON(t, h, `{"username":"alice","email":"a@ex.com","password":"pw"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("first missing field is named", func(t *testing.T) {
		rec := postJSON(t, h, `{"username":"alice","password":"pw"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "email is required", resp["error_description"])
	})

	t.Run("empty string counts as missing", func(t *testing.T) {
		rec := postJSON(t, h, `{"username":"","email":"a@ex.com","password":"pw"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "username is required", resp["error_description"])
	})

	t.Run("null counts as missing", func(t *testing.T) {
		rec := postJSON(t, h, `{"username":null,"email":"a@ex.com","password":"pw"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		rec := postJSON(t, h, `{"username":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body stays readable downstream", func(t *testing.T) {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Username string `json:"username"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "alice", body.Username)
			w.WriteHeader(http.StatusOK)
		})
		rec := postJSON(t, Chain(echo, RequireFields("username")), `{"username":"alice"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
