package apiclient

import (
	"context"
	"fmt"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

type MenuItemInput struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
	Route    string `json:"route"`
	ParentID *int   `json:"parent_id,omitempty"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

func (c *Client) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return getList[models.MenuItem](ctx, c, "/menu-items", nil)
}

func (c *Client) CreateMenuItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	var out models.MenuItem
	err := c.post(ctx, "/menu-items", in, &out)
	return out, err
}

func (c *Client) RoleMenu(ctx context.Context, roleID int) ([]models.MenuItem, error) {
	var out struct {
		MenuItems []models.MenuItem `json:"menu_items"`
	}
	err := c.get(ctx, fmt.Sprintf("/menu-items/role/%d", roleID), nil, &out)
	return out.MenuItems, err
}

func (c *Client) SaveRoleMenu(ctx context.Context, roleID int, items []models.MenuVisibility) error {
	if items == nil {
		items = []models.MenuVisibility{}
	}
	body := map[string]any{"menu_items": items}
	return c.post(ctx, fmt.Sprintf("/menu-items/role/%d", roleID), body, nil)
}

// UserMenu is the sidebar tree for the signed-in user.
func (c *Client) UserMenu(ctx context.Context) ([]models.MenuItem, error) {
	return getList[models.MenuItem](ctx, c, "/menu/user", nil)
}
