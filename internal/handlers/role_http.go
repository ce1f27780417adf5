package handlers

import (
	"fmt"
	"net/http"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/editor"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

// RoleHTTP serves the roles and permissions page. The matrix is edited in
// the browser and saved with one request carrying every permission.
type RoleHTTP struct {
	*Base
}

func NewRoleHTTP(b *Base) *RoleHTTP { return &RoleHTTP{Base: b} }

const rolesPath = "/admin/roles-permissions"

var roleLevels = []int{1, 2, 3}

func findRole(roles []models.Role, id int) *models.Role {
	for i := range roles {
		if roles[i].ID == id {
			return &roles[i]
		}
	}
	return nil
}

func (h *RoleHTTP) page(w http.ResponseWriter, r *http.Request, status int, extra views.Data) {
	ctx := r.Context()
	roles, err := h.API.ListRoles(ctx)
	if err != nil {
		h.loadFailed(w, r, err, "Roles could not be loaded")
		return
	}
	catalogue, err := h.API.ListModules(ctx)
	if err != nil {
		h.loadFailed(w, r, err, "Modules could not be loaded")
		return
	}

	data := views.Data{
		"roles":     roles,
		"catalogue": catalogue,
		"levels":    roleLevels,
		"actions":   models.ActionTypes,
		"role_form": forms.RoleForm{Level: 1},
		"perm_form": forms.PermissionForm{ActionType: models.ActionRead},
	}
	if sel := findRole(roles, utils.QueryInt(r.URL.Query(), "role", 0)); sel != nil {
		modules, err := h.API.RolePermissions(ctx, sel.ID)
		if err != nil {
			h.loadFailed(w, r, err, "Role permissions could not be loaded")
			return
		}
		data["selected"] = sel
		data["matrix"] = editor.NewPermissionMatrix(sel.ID, modules)
	}
	for k, v := range extra {
		data[k] = v
	}
	h.render(w, r, status, "admin_roles.html", data)
}

// GET /admin/roles-permissions
func (h *RoleHTTP) Page() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, r, http.StatusOK, nil)
	}
}

// POST /admin/roles-permissions/{id}
func (h *RoleHTTP) SavePermissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		back := fmt.Sprintf("%s?role=%d", rolesPath, id)

		modules, err := h.API.RolePermissions(r.Context(), id)
		if err != nil {
			h.fail(w, r, err, "Role permissions could not be loaded", back)
			return
		}
		m := editor.NewPermissionMatrix(id, modules)
		m.ApplyForm(r.PostForm)
		if err := h.API.SaveRolePermissions(r.Context(), id, m.Grants()); err != nil {
			h.fail(w, r, err, "Permissions could not be saved", back)
			return
		}
		h.Log.Info().Int("role_id", id).Int("granted", m.GrantedCount()).Msg("role permissions saved")
		h.done(w, r, "Permissions saved", back)
	}
}

// POST /admin/roles
func (h *RoleHTTP) CreateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParseRole(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			role, err := h.API.CreateRole(r.Context(), apiclient.RoleInput{
				Name:        in.Name,
				DisplayName: in.DisplayName,
				Description: in.Description,
				Level:       in.Level,
			})
			if err == nil {
				h.done(w, r, fmt.Sprintf("Role %s created", role.Label()), fmt.Sprintf("%s?role=%d", rolesPath, role.ID))
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The role could not be created", rolesPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"role_form": in, "role_errors": errs})
	}
}

// POST /admin/permissions
func (h *RoleHTTP) CreatePermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParsePermission(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			_, err := h.API.CreatePermission(r.Context(), apiclient.PermissionInput{
				ModuleID:    in.ModuleID,
				Name:        in.Name,
				DisplayName: in.DisplayName,
				Description: in.Description,
				ActionType:  in.ActionType,
			})
			if err == nil {
				h.done(w, r, "Permission created", rolesPath)
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The permission could not be created", rolesPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"perm_form": in, "perm_errors": errs})
	}
}
