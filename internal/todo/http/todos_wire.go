package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/stackleaf/todo/internal/todo/domain"
	"github.com/stackleaf/todo/internal/todo/service"
	"github.com/stackleaf/todo/pkg/slogx"
	"github.com/stackleaf/todo/pkg/todosdk"
)

func (h *TodosHandler) writeTodoError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		todosdk.ErrTodoNotFound.WriteError(w)
	case errors.Is(err, service.ErrTitleRequired):
		todosdk.NewMissingFieldError("title").WriteError(w)
	case errors.Is(err, service.ErrEmptyPatch):
		todosdk.NewValidationError("at least one field must be provided").WriteError(w)
	default:
		slogx.FromContext(ctx).Error("todo operation failed", "err", err)
		todosdk.ErrServerError.WriteError(w)
	}
}

func toWireTodo(t domain.Todo) todosdk.Todo {
	return todosdk.Todo{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Type:        t.Type,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// toWireTodos always returns a non-nil slice so an empty listing encodes as
// [] rather than null.
func toWireTodos(todos []domain.Todo) []todosdk.Todo {
	out := make([]todosdk.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, toWireTodo(t))
	}
	return out
}
