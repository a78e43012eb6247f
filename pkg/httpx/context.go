package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyUsername ctxKey = "username"
)

// UserIDFromCtx returns the authenticated user id, or "" when the request
// did not pass through AuthnMiddleware.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// UsernameFromCtx returns the authenticated username, or "".
func UsernameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}
