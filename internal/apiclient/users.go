package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

// UserInput is the create/update payload. Password fields are omitted on
// update when empty.
type UserInput struct {
	Name                 string `json:"name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Cedula               string `json:"cedula"`
	Phone                string `json:"phone,omitempty"`
	WhatsappPhone        string `json:"whatsapp_phone,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
	RoleID               int    `json:"role_id"`
	AreaID               *int   `json:"area_id,omitempty"`
	IsActive             *bool  `json:"is_active,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, q url.Values) (models.Page[models.User], error) {
	var out models.Page[models.User]
	_, err := c.request(ctx).SetQueryParamsFromValues(q).SetResult(&out).Get("/users")
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (models.User, error) {
	var out models.User
	err := c.post(ctx, "/users", in, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, in UserInput) (models.User, error) {
	var out models.User
	err := c.patch(ctx, fmt.Sprintf("/users/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

func (c *Client) ToggleUserStatus(ctx context.Context, id int) error {
	return c.patch(ctx, fmt.Sprintf("/users/%d/toggle-status", id), nil, nil)
}

// AssignRole moves the user to roleID, optionally dropping the user's
// special permission overrides.
func (c *Client) AssignRole(ctx context.Context, id, roleID int, clearSpecial bool) error {
	body := map[string]any{"role_id": roleID, "clear_special_permissions": clearSpecial}
	return c.post(ctx, fmt.Sprintf("/users/%d/assign-role", id), body, nil)
}
