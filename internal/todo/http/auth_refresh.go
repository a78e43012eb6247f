package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stackleaf/todo/internal/todo/service"
	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/slogx"
	"github.com/stackleaf/todo/pkg/todosdk"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Refresh Token Endpoint
//	@Description	Exchange a valid refresh token for a new access token. The
//	@Description	refresh token is not rotated; it stays valid until superseded
//	@Description	by a later login or until it expires.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.RefreshRequest	true	"Refresh token from login"
//	@Success		200		{object}	todosdk.RefreshResponse	"accessToken"
//	@Failure		401		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/auth/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req todosdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		todosdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	// A missing token is a 401; a present but unrecognized one is a 403.
	if req.RefreshToken == "" {
		todosdk.ErrMissingRefreshToken.WriteError(w)
		return
	}

	access, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			todosdk.ErrInvalidRefreshToken.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, todosdk.RefreshResponse{
		AccessToken: access,
	})
}
