package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/stackleaf/todo/internal/todo/domain"
)

type todosRepo struct {
	db dbtx
}

const todoColumns = `id, user_id, title, description, type, is_completed, created_at, updated_at`

func scanTodo(scan func(dest ...any) error) (domain.Todo, error) {
	var t domain.Todo
	err := scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Type,
		&t.IsCompleted,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, title, description, type, is_completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Type, t.IsCompleted, now, now)
	return err
}

func (r *todosRepo) GetTodoByID(ctx context.Context, id, userID string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND user_id = ?`,
		id, userID)
	return scanTodo(row.Scan)
}

func (r *todosRepo) ListTodos(ctx context.Context, userID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = ? ORDER BY id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTodos(rows)
}

func (r *todosRepo) ListTodosFiltered(
	ctx context.Context,
	userID string,
	f domain.TodoFilter,
) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = ?`
	args := []any{userID}

	if f.IsCompleted != nil {
		query += ` AND is_completed = ?`
		args = append(args, *f.IsCompleted)
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, f.Type)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTodos(rows)
}

func collectTodos(rows *sql.Rows) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todosRepo) UpdateTodo(ctx context.Context, t domain.Todo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, type = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.Description, t.Type, time.Now().UTC(), t.ID, t.UserID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// PatchTodo builds a SET clause from only the fields present in the patch.
// Values are always bound as parameters, never interpolated.
func (r *todosRepo) PatchTodo(ctx context.Context, id, userID string, p domain.TodoPatch) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 7)

	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *p.Type)
	}
	if p.IsCompleted != nil {
		sets = append(sets, "is_completed = ?")
		args = append(args, *p.IsCompleted)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id, userID)

	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`,
		args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *todosRepo) DeleteTodo(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND user_id = ?`,
		id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected turns a zero-row write into ErrNotFound so ownership
// scoping surfaces as a 404 rather than a silent success.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
