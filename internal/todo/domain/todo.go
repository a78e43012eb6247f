package domain

import "time"

// Todo is a task record owned by exactly one user.
type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Type        string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch describes a partial update; nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Type        *string
	IsCompleted *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Type == nil && p.IsCompleted == nil
}

// TodoFilter narrows a listing; zero values mean "no constraint".
type TodoFilter struct {
	IsCompleted *bool
	Type        string
}
