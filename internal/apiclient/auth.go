package apiclient

import (
	"context"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a bearer token. login is a username or an email.
func (c *Client) Login(ctx context.Context, login, password string) (LoginResult, error) {
	var out LoginResult
	err := c.post(ctx, "/auth/login", map[string]string{"login": login, "password": password}, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.get(ctx, "/auth/me", nil, &out)
	return out, err
}
