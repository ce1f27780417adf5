package editor

import (
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
)

// PermissionMatrix is the local, unsaved state of one role's grants.
// Nothing reaches the API until Grants is sent in a single save.
type PermissionMatrix struct {
	RoleID  int
	Modules []models.Module
}

func NewPermissionMatrix(roleID int, modules []models.Module) *PermissionMatrix {
	return &PermissionMatrix{RoleID: roleID, Modules: modules}
}

// toggle flips one permission inside one module. It reports whether the
// pair was found.
func (m *PermissionMatrix) toggle(moduleID, permissionID int) bool {
	for i := range m.Modules {
		if m.Modules[i].ID != moduleID {
			continue
		}
		perms := m.Modules[i].Permissions
		for j := range perms {
			if perms[j].ID == permissionID {
				perms[j].IsGranted = !perms[j].IsGranted
				return true
			}
		}
	}
	return false
}

// Grants lists every permission of every module with its current flag,
// in display order.
func (m *PermissionMatrix) Grants() []models.PermissionGrant {
	out := make([]models.PermissionGrant, 0, m.Count())
	for _, mod := range m.Modules {
		for _, p := range mod.Permissions {
			out = append(out, models.PermissionGrant{PermissionID: p.ID, IsGranted: p.IsGranted})
		}
	}
	return out
}

func (m *PermissionMatrix) Count() int {
	n := 0
	for _, mod := range m.Modules {
		n += len(mod.Permissions)
	}
	return n
}

func (m *PermissionMatrix) GrantedCount() int {
	n := 0
	for _, mod := range m.Modules {
		for _, p := range mod.Permissions {
			if p.IsGranted {
				n++
			}
		}
	}
	return n
}

// ApplyForm sets every shown permission from a submitted matrix form:
// "perm" carries each id that was on screen, "grant" the checked ones.
// Permissions that were not on screen keep their loaded flag.
func (m *PermissionMatrix) ApplyForm(v url.Values) {
	shown := idSet(utils.FormInts(v, "perm"))
	granted := idSet(utils.FormInts(v, "grant"))
	for _, mod := range m.Modules {
		for _, p := range mod.Permissions {
			if _, ok := shown[p.ID]; !ok {
				continue
			}
			if _, want := granted[p.ID]; want != p.IsGranted {
				m.toggle(mod.ID, p.ID)
			}
		}
	}
}

func idSet(ids []int) map[int]struct{} {
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
