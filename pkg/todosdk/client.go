package todosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a small typed client for the todo service HTTP API. It exists
// mainly for the end-to-end test suite but is usable as a standalone SDK.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a new account. Registration does not log the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout acknowledges the logout. The server performs no revocation.
func (c *Client) Logout(ctx context.Context) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", "", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	var out RefreshResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh-token", "", req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs a JSON request/response round trip. A non-nil accessToken
// is sent as a bearer Authorization header. Any status other than wantStatus
// is parsed into an *APIError.
func (c *Client) doJSON(
	ctx context.Context,
	method, path, accessToken string,
	body any,
	wantStatus int,
	out any,
) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return parseErrorResponse(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// parseErrorResponse converts a non-2xx response body into a typed *APIError.
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  statusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode)),
	}
}
