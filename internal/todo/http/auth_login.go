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

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange a username-or-email identifier plus password for an
//	@Description	access/refresh token pair. Failed attempts never reveal which
//	@Description	part of the credentials was wrong.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.LoginRequest	true	"Identifier and password"
//	@Success		200		{object}	todosdk.TokenResponse	"message, accessToken, refreshToken"
//	@Failure		400		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req todosdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		todosdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			todosdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			todosdk.NewValidationError("email is invalid").WriteError(w)
		case errors.Is(err, service.ErrInvalidPassword):
			todosdk.NewValidationError("password must be between 4 and 20 characters").WriteError(w)
		default:
			log.Error("login failed", "err", err)
			todosdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, todosdk.TokenResponse{
		Message:      "login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
