package http

import (
	"net/http"

	"github.com/stackleaf/todo/internal/todo/service"
	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/slogx"
	"github.com/stackleaf/todo/pkg/todosdk"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Acknowledge the end of a session. No server-side state is
//	@Description	touched; clients discard their tokens and the short access
//	@Description	TTL bounds any remaining exposure.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	todosdk.MessageResponse	"message"
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.AuthService.Logout(ctx); err != nil {
		log.Error("logout failed", "err", err)
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.MessageResponse{
		Message: "logout successful",
	})
}
