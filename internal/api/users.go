package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/MichalMitros/crm-console/internal/platform/models"
)

// ListUsers returns all CRM users.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, request{
		endpoint: "users.list",
		method:   http.MethodGet,
		path:     "/users",
		auth:     true,
	}, &users)
	if err != nil {
		return nil, err
	}

	return nonNil(users), nil
}

// CreateUser creates new user account as logged in administrator.
func (c *Client) CreateUser(ctx context.Context, registration models.Registration) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		endpoint: "users.create",
		method:   http.MethodPost,
		path:     "/users",
		body:     registration,
		auth:     true,
	}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login exchanges credentials for token.
func (c *Client) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	var body []byte
	err := c.do(ctx, request{
		endpoint: "users.login",
		method:   http.MethodPost,
		path:     "/users/login",
		body:     credentials,
	}, &body)
	if err != nil {
		return "", err
	}

	token := decodeToken(body)
	if token == "" {
		return "", &Error{Kind: ErrDecode, Endpoint: "users.login", Message: "token not found in login response"}
	}

	return token, nil
}

// Register creates new account.
func (c *Client) Register(ctx context.Context, registration models.Registration) error {
	return c.do(ctx, request{
		endpoint: "users.register",
		method:   http.MethodPost,
		path:     "/users/register",
		body:     registration,
	}, nil)
}

// Me returns profile of logged in user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		endpoint: "users.me",
		method:   http.MethodGet,
		path:     "/users/me",
		auth:     true,
	}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUserStatus activates or deactivates user.
func (c *Client) UpdateUserStatus(ctx context.Context, id string, active bool) error {
	return c.do(ctx, request{
		endpoint: "users.status",
		method:   http.MethodPatch,
		path:     "/users/" + url.PathEscape(id) + "/status",
		body:     map[string]bool{"isActive": active},
		auth:     true,
	}, nil)
}

// UpdateUserRole changes user's role.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	return c.do(ctx, request{
		endpoint: "users.role",
		method:   http.MethodPatch,
		path:     "/users/" + url.PathEscape(id) + "/role",
		body:     map[string]models.Role{"role": role},
		auth:     true,
	}, nil)
}

// decodeToken reads token from login response. The API answers with plain text,
// JSON string, object with token field or {data: {token}} envelope.
func decodeToken(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var token string
	if err := json.Unmarshal([]byte(trimmed), &token); err == nil {
		return token
	}

	var wrapped struct {
		Token string `json:"token"`
		Data  *struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err == nil {
		if wrapped.Token == "" && wrapped.Data != nil {
			return wrapped.Data.Token
		}
		return wrapped.Token
	}

	if strings.ContainsAny(trimmed, "{}[]\" ") {
		return ""
	}

	return trimmed
}
