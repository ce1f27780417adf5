package editor

import "github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"

// Source of a permission's displayed state on the per-user page.
const (
	SourceNone     = ""
	SourceRole     = "role"
	SourceOverride = "override"
)

// PermissionState is one row of the per-user permissions page.
type PermissionState struct {
	Permission models.Permission
	Granted    bool
	Source     string
}

type ModuleStates struct {
	Module models.Module
	States []PermissionState
}

// UserOverrides resolves what the per-user page shows: a user override wins
// over the role grant. Display only; the API decides effective access.
type UserOverrides struct {
	role      map[int]bool
	overrides map[int]bool
}

func NewUserOverrides(up models.UserPermissions) *UserOverrides {
	o := &UserOverrides{role: map[int]bool{}, overrides: map[int]bool{}}
	for _, p := range up.RolePermissions {
		o.role[p.ID] = p.PivotGranted()
	}
	for _, p := range up.UserPermissions {
		o.overrides[p.ID] = p.PivotGranted()
	}
	return o
}

func (o *UserOverrides) State(p models.Permission) PermissionState {
	if g, ok := o.overrides[p.ID]; ok {
		return PermissionState{Permission: p, Granted: g, Source: SourceOverride}
	}
	if g, ok := o.role[p.ID]; ok {
		return PermissionState{Permission: p, Granted: g, Source: SourceRole}
	}
	return PermissionState{Permission: p, Source: SourceNone}
}

// Resolve lays the catalogue out module by module.
func (o *UserOverrides) Resolve(catalogue []models.Module) []ModuleStates {
	out := make([]ModuleStates, 0, len(catalogue))
	for _, m := range catalogue {
		ms := ModuleStates{Module: m}
		for _, p := range m.Permissions {
			ms.States = append(ms.States, o.State(p))
		}
		out = append(out, ms)
	}
	return out
}

func (o *UserOverrides) OverrideCount() int { return len(o.overrides) }

// RoleGranted lists the role permissions that are granted, for the
// read-only "from role" panel.
func RoleGranted(up models.UserPermissions) []models.Permission {
	var out []models.Permission
	for _, p := range up.RolePermissions {
		if p.PivotGranted() {
			out = append(out, p)
		}
	}
	return out
}
