package models

// Permission action tags.
const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionSpecial = "special"
)

var ActionTypes = []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionSpecial}

type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}

// Label prefers the display name.
func (r Role) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Name
}

type Pivot struct {
	IsGranted bool `json:"is_granted"`
}

type Permission struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	ActionType  string `json:"action_type"`
	IsActive    bool   `json:"is_active,omitempty"`
	IsGranted   bool   `json:"is_granted,omitempty"`
	Pivot       *Pivot `json:"pivot,omitempty"`
}

// PivotGranted reads the grant flag of a role/user pivot row.
func (p Permission) PivotGranted() bool { return p.Pivot != nil && p.Pivot.IsGranted }

type Module struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Route       string       `json:"route,omitempty"`
	IsActive    bool         `json:"is_active,omitempty"`
	OrderIndex  int          `json:"order_index,omitempty"`
	Permissions []Permission `json:"permissions"`
}

type PermissionGrant struct {
	PermissionID int  `json:"permission_id"`
	IsGranted    bool `json:"is_granted"`
}

// UserPermissions is the per-user override view.
type UserPermissions struct {
	User            User         `json:"user"`
	RolePermissions []Permission `json:"role_permissions"`
	UserPermissions []Permission `json:"user_permissions"`
}
