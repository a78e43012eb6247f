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

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new user account. Registration does not log the user in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.RegisterRequest	true	"Desired username, email and password"
//	@Success		201		{object}	todosdk.MessageResponse	"message"
//	@Failure		400		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req todosdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		todosdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	_, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			todosdk.NewValidationError("email is invalid").WriteError(w)
		case errors.Is(err, service.ErrInvalidPassword):
			todosdk.NewValidationError("password must be between 4 and 20 characters").WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			todosdk.NewConflictError("username already exists").WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			todosdk.NewConflictError("email already exists").WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			todosdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, todosdk.MessageResponse{
		Message: "user registered successfully",
	})
}
