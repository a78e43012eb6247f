package todosdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListTodos returns every todo owned by the authenticated user.
func (c *Client) ListTodos(ctx context.Context, accessToken string) ([]Todo, error) {
	var out []Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todos", accessToken, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterTodos lists the user's todos filtered by completion and/or type.
// Nil / empty filters are omitted from the query.
func (c *Client) FilterTodos(
	ctx context.Context,
	accessToken string,
	isCompleted *bool,
	todoType string,
) ([]Todo, error) {
	q := url.Values{}
	if isCompleted != nil {
		q.Set("isCompleted", strconv.FormatBool(*isCompleted))
	}
	if todoType != "" {
		q.Set("type", todoType)
	}

	path := "/todos/filter"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out []Todo
	if err := c.doJSON(ctx, http.MethodGet, path, accessToken, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTodo creates a todo owned by the authenticated user.
func (c *Client) CreateTodo(ctx context.Context, accessToken string, req CreateTodoRequest) (*Todo, error) {
	var out Todo
	if err := c.doJSON(ctx, http.MethodPost, "/todos", accessToken, req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTodo fetches a single todo by id.
func (c *Client) GetTodo(ctx context.Context, accessToken, id string) (*Todo, error) {
	var out Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todos/"+id, accessToken, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo replaces the mutable fields of a todo.
func (c *Client) UpdateTodo(ctx context.Context, accessToken, id string, req UpdateTodoRequest) (*Todo, error) {
	var out Todo
	if err := c.doJSON(ctx, http.MethodPut, "/todos/"+id, accessToken, req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchTodo updates only the fields set in req.
func (c *Client) PatchTodo(ctx context.Context, accessToken, id string, req PatchTodoRequest) (*Todo, error) {
	var out Todo
	if err := c.doJSON(ctx, http.MethodPatch, "/todos/"+id, accessToken, req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, accessToken, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/todos/"+id, accessToken, nil, http.StatusOK, nil)
}
