package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stackleaf/todo/internal/todo/domain"
	"github.com/stackleaf/todo/internal/todo/store"
	"github.com/stackleaf/todo/pkg/idx"
)

var (
	// ErrTodoNotFound is returned when the todo doesn't exist or belongs
	// to someone else; callers cannot tell the two apart.
	ErrTodoNotFound = errors.New("todo_not_found")

	ErrTitleRequired = errors.New("title_required")
	ErrEmptyPatch    = errors.New("empty_patch")
)

// TodoService implements per-user todo CRUD. Every operation is scoped to
// the owning user at the query level.
type TodoService struct {
	Store store.Store
}

// Create inserts a new todo owned by userID.
func (s *TodoService) Create(ctx context.Context, userID, title, description, typ string) (domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Todo{}, ErrTitleRequired
	}

	todo := domain.Todo{
		ID:          idx.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        typ,
	}

	if err := s.Store.Todos().CreateTodo(ctx, todo); err != nil {
		return domain.Todo{}, err
	}

	return s.Store.Todos().GetTodoByID(ctx, todo.ID, userID)
}

// Get returns a single todo owned by userID.
func (s *TodoService) Get(ctx context.Context, id, userID string) (domain.Todo, error) {
	todo, err := s.Store.Todos().GetTodoByID(ctx, id, userID)
	if err != nil {
		return domain.Todo{}, mapTodoErr(err)
	}
	return todo, nil
}

// List returns every todo owned by userID, newest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodos(ctx, userID)
}

// Filter returns the user's todos narrowed by completion state and/or type.
// An empty filter behaves like List.
func (s *TodoService) Filter(ctx context.Context, userID string, f domain.TodoFilter) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodosFiltered(ctx, userID, f)
}

// Update replaces the todo's title, description and type.
func (s *TodoService) Update(ctx context.Context, id, userID, title, description, typ string) (domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Todo{}, ErrTitleRequired
	}

	err := s.Store.Todos().UpdateTodo(ctx, domain.Todo{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        typ,
	})
	if err != nil {
		return domain.Todo{}, mapTodoErr(err)
	}

	return s.Store.Todos().GetTodoByID(ctx, id, userID)
}

// Patch applies only the fields present in the patch and returns the
// resulting todo.
func (s *TodoService) Patch(ctx context.Context, id, userID string, p domain.TodoPatch) (domain.Todo, error) {
	if p.IsEmpty() {
		return domain.Todo{}, ErrEmptyPatch
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return domain.Todo{}, ErrTitleRequired
	}

	if err := s.Store.Todos().PatchTodo(ctx, id, userID, p); err != nil {
		return domain.Todo{}, mapTodoErr(err)
	}

	return s.Store.Todos().GetTodoByID(ctx, id, userID)
}

// Delete removes a todo owned by userID.
func (s *TodoService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Store.Todos().DeleteTodo(ctx, id, userID); err != nil {
		return mapTodoErr(err)
	}
	return nil
}

func mapTodoErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrTodoNotFound
	}
	return err
}
