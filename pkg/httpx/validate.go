package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stackleaf/todo/pkg/todosdk"
)

// maxBodyBytes caps how much of a request body the validation middleware
// will buffer.
const maxBodyBytes = 1 << 20

// RequireFields rejects a request with a 400 naming the first listed body
// field that is absent, null or an empty string. The body is re-buffered so
// downstream handlers can decode it again.
func RequireFields(fields ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err != nil {
				todosdk.ErrInvalidJSONBody.WriteError(w)
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(raw))

			var body map[string]any
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &body); err != nil {
					todosdk.ErrInvalidJSONBody.WriteError(w)
					return
				}
			}

			for _, field := range fields {
				if !fieldPresent(body, field) {
					todosdk.NewMissingFieldError(field).WriteError(w)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func fieldPresent(body map[string]any, field string) bool {
	v, ok := body[field]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && s == "" {
		return false
	}
	return true
}
