package todosdk

import "time"

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /auth/login. Identifier may be a
// username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RefreshRequest is the body for POST /auth/refresh-token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Message      string `json:"message,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is returned by a successful token refresh. Note there is
// no refresh token here: the presented one stays valid until the next login.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// MessageResponse is a bare acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON shape of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Todo is the wire representation of a task record.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTodoRequest is the body for POST /todos.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// UpdateTodoRequest is the body for PUT /todos/{id}; all fields are replaced.
type UpdateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// PatchTodoRequest is the body for PATCH /todos/{id}; nil fields are left
// untouched.
type PatchTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
