package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login starts a dashboard session and returns the session cookie value.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	endpoint := c.endpoint(nil, "auth", "login")
	resp, err := c.do(ctx, OpLogin, http.MethodPost, endpoint, loginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	defer drain(resp)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			c.setSession(cookie.Value)
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("%s failed: %w: no session cookie in response", OpLogin, domain.ErrUnauthorized)
}

// CurrentUser returns the user of the current session.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var payload struct {
		User *domain.User `json:"user"`
	}
	if err := c.getJSON(ctx, OpMe, c.endpoint(nil, "auth", "me"), &payload); err != nil {
		return nil, err
	}
	if payload.User == nil || payload.User.Username == "" {
		return nil, fmt.Errorf("%s failed: %w", OpMe, domain.ErrUnauthorized)
	}
	return payload.User, nil
}

// Logout ends the session on the backend. The local session is dropped
// even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.clearSession()
	return c.sendJSON(ctx, OpLogout, http.MethodPost, c.endpoint(nil, "auth", "logout"), nil, nil)
}
