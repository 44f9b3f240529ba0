package api

import (
	"context"
	"net/http"

	"jobdesk-cli/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type meResponse struct {
	User model.User `json:"user"`
}

// Login exchanges credentials for a token and the authenticated identity.
func (c *Client) Login(ctx context.Context, email, password string) (string, model.User, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out, false)
	if err != nil {
		return "", model.User{}, err
	}
	return out.Token, out.User, nil
}

// Register creates an account; the server logs the new identity in directly.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, model.User, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &out, false)
	if err != nil {
		return "", model.User{}, err
	}
	return out.Token, out.User, nil
}

// Me validates the installed token and returns its identity. A 401 comes
// back as a KindAuthRequired error, which Restore treats as an expired
// credential rather than a failure.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out, true); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}
