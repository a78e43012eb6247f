package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stackleaf/todo/internal/todo/domain"
	"github.com/stackleaf/todo/internal/todo/service"
	"github.com/stackleaf/todo/pkg/httpx"
	"github.com/stackleaf/todo/pkg/slogx"
	"github.com/stackleaf/todo/pkg/todosdk"
)

type TodosHandler struct {
	TodoService *service.TodoService
}

// HandleList godoc
//
//	@Summary		List Todos
//	@Description	Returns every todo owned by the authenticated user, newest first.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		todosdk.Todo			"todos"
//	@Failure		401	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/todos [get].
func (h *TodosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	todos, err := h.TodoService.List(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		log.Error("failed to list todos", "err", err)
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireTodos(todos))
}

// HandleFilter godoc
//
//	@Summary		Filter Todos
//	@Description	Lists the user's todos narrowed by completion state and/or type.
//	@Description	With no query parameters this behaves like the plain listing.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			isCompleted	query		bool					false	"Filter by completion state"
//	@Param			type		query		string					false	"Filter by todo type"
//	@Success		200			{array}		todosdk.Todo			"todos"
//	@Failure		400			{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/todos/filter [get].
func (h *TodosHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var filter domain.TodoFilter
	if raw := r.URL.Query().Get("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			todosdk.NewValidationError("isCompleted must be true or false").WriteError(w)
			return
		}
		filter.IsCompleted = &completed
	}
	filter.Type = r.URL.Query().Get("type")

	todos, err := h.TodoService.Filter(ctx, httpx.UserIDFromCtx(ctx), filter)
	if err != nil {
		log.Error("failed to filter todos", "err", err)
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireTodos(todos))
}

// HandleGet godoc
//
//	@Summary		Get Todo
//	@Description	Fetch a single todo by id. Todos belonging to other users are
//	@Description	indistinguishable from missing ones.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Todo id"
//	@Success		200	{object}	todosdk.Todo			"todo"
//	@Failure		401	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/todos/{id} [get].
func (h *TodosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	todo, err := h.TodoService.Get(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx))
	if err != nil {
		h.writeTodoError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireTodo(todo))
}

// HandleCreate godoc
//
//	@Summary		Create Todo
//	@Description	Create a todo owned by the authenticated user.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.CreateTodoRequest	true	"Title, description and type"
//	@Success		201		{object}	todosdk.Todo				"todo"
//	@Failure		400		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Router			/todos [post].
func (h *TodosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req todosdk.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		todosdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	todo, err := h.TodoService.Create(ctx, httpx.UserIDFromCtx(ctx), req.Title, req.Description, req.Type)
	if err != nil {
		h.writeTodoError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toWireTodo(todo))
}

// HandleUpdate godoc
//
//	@Summary		Replace Todo
//	@Description	Replace a todo's title, description and type.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Todo id"
//	@Param			request	body		todosdk.UpdateTodoRequest	true	"Replacement fields"
//	@Success		200		{object}	todosdk.Todo				"todo"
//	@Failure		400		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	todosdk.ErrorResponse		"error, error_description"
//	@Router			/todos/{id} [put].
func (h *TodosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req todosdk.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		todosdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	todo, err := h.TodoService.Update(ctx,
		r.PathValue("id"), httpx.UserIDFromCtx(ctx),
		req.Title, req.Description, req.Type)
	if err != nil {
		h.writeTodoError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireTodo(todo))
}

// HandlePatch godoc
//
//	@Summary		Patch Todo
//	@Description	Update only the fields present in the body; absent fields are
//	@Description	left untouched.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Todo id"
//	@Param			request	body		todosdk.PatchTodoRequest	true	"Fields to change"
//	@Success		200		{object}	todosdk.Todo			"todo"
//	@Failure		400		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/todos/{id} [patch].
func (h *TodosHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req todosdk.PatchTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		todosdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		IsCompleted: req.IsCompleted,
	}

	todo, err := h.TodoService.Patch(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx), patch)
	if err != nil {
		h.writeTodoError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireTodo(todo))
}

// HandleDelete godoc
//
//	@Summary		Delete Todo
//	@Description	Remove a todo owned by the authenticated user.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"Todo id"
//	@Success		200	{object}	todosdk.MessageResponse	"message"
//	@Failure		401	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	todosdk.ErrorResponse	"error, error_description"
//	@Router			/todos/{id} [delete].
func (h *TodosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.TodoService.Delete(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx)); err != nil {
		h.writeTodoError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.MessageResponse{
		Message: "todo deleted successfully",
	})
}
