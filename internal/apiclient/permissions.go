package apiclient

import (
	"context"
	"fmt"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

type RoleInput struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Level       int    `json:"level"`
}

type PermissionInput struct {
	ModuleID    int    `json:"module_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	ActionType  string `json:"action_type"`
}

func (c *Client) ListRoles(ctx context.Context) ([]models.Role, error) {
	return getList[models.Role](ctx, c, "/roles", nil)
}

func (c *Client) CreateRole(ctx context.Context, in RoleInput) (models.Role, error) {
	var out models.Role
	err := c.post(ctx, "/roles", in, &out)
	return out, err
}

func (c *Client) ListModules(ctx context.Context) ([]models.Module, error) {
	return getList[models.Module](ctx, c, "/modules", nil)
}

// ListPermissions returns the full catalogue grouped by module.
func (c *Client) ListPermissions(ctx context.Context) ([]models.Module, error) {
	return getList[models.Module](ctx, c, "/permissions", nil)
}

func (c *Client) CreatePermission(ctx context.Context, in PermissionInput) (models.Permission, error) {
	var out models.Permission
	err := c.post(ctx, "/permissions", in, &out)
	return out, err
}

// RolePermissions returns every module with each permission's is_granted
// flag for the role.
func (c *Client) RolePermissions(ctx context.Context, roleID int) ([]models.Module, error) {
	return getList[models.Module](ctx, c, fmt.Sprintf("/permissions/roles/%d", roleID), nil)
}

// SaveRolePermissions replaces the role's grants with one request carrying
// the complete list.
func (c *Client) SaveRolePermissions(ctx context.Context, roleID int, grants []models.PermissionGrant) error {
	if grants == nil {
		grants = []models.PermissionGrant{}
	}
	body := map[string]any{"permissions": grants}
	return c.post(ctx, fmt.Sprintf("/permissions/roles/%d", roleID), body, nil)
}

func (c *Client) UserPermissions(ctx context.Context, userID int) (models.UserPermissions, error) {
	var out models.UserPermissions
	err := c.get(ctx, fmt.Sprintf("/permissions/users/%d", userID), nil, &out)
	return out, err
}

// ToggleUserPermission flips one per-user override; the resulting state is
// decided by the API.
func (c *Client) ToggleUserPermission(ctx context.Context, userID, permissionID int) error {
	body := map[string]int{"permission_id": permissionID}
	return c.post(ctx, fmt.Sprintf("/permissions/users/%d/toggle", userID), body, nil)
}
