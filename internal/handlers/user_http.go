package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/editor"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/listing"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

// UserHTTP serves user administration. The edit and role panels open
// inline on the list, fed by the row the admin clicked.
type UserHTTP struct {
	*Base
}

func NewUserHTTP(b *Base) *UserHTTP { return &UserHTTP{Base: b} }

var userFilters = []string{"role_id", "area_id", "is_active"}

const usersPath = "/admin/users"

// page renders the list with whatever panel extra opens.
func (h *UserHTTP) page(w http.ResponseWriter, r *http.Request, status int, extra views.Data) {
	ctx := r.Context()
	q := listing.FromValues(r.URL.Query(), userFilters...)
	users, err := h.API.ListUsers(ctx, q.Values())
	if err != nil {
		h.loadFailed(w, r, err, "Users could not be loaded")
		return
	}
	roles, err := h.API.ListRoles(ctx)
	if err != nil {
		h.loadFailed(w, r, err, "Roles could not be loaded")
		return
	}
	areas, err := h.API.AllAreas(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.expired(w, r)
			return
		}
		h.Log.Warn().Err(err).Msg("load areas")
	}

	data := views.Data{
		"users": users.Data,
		"pager": listing.NewPager(q, users),
		"query": q,
		"roles": roles,
		"areas": areas,
	}
	v := r.URL.Query()
	switch {
	case extra != nil:
	case v.Get("new") != "":
		data["panel"] = "new"
		data["form"] = forms.NewUserForm{}
	case v.Get("edit") != "":
		if u := findUser(users.Data, utils.QueryInt(v, "edit", 0)); u != nil {
			data["panel"] = "edit"
			data["target"] = u
			data["form"] = editForm(u)
		}
	case v.Get("assign") != "":
		if u := findUser(users.Data, utils.QueryInt(v, "assign", 0)); u != nil {
			data["panel"] = "assign"
			data["target"] = u
		}
	}
	for k, val := range extra {
		data[k] = val
	}
	h.render(w, r, status, "admin_users.html", data)
}

func findUser(users []models.User, id int) *models.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func editForm(u *models.User) forms.EditUserForm {
	f := forms.EditUserForm{
		UserFields: forms.UserFields{
			Name:          u.Name,
			Username:      u.Username,
			Email:         u.Email,
			Cedula:        u.Cedula,
			Phone:         u.Phone,
			WhatsappPhone: u.WhatsappPhone,
			RoleID:        u.RoleID,
		},
		IsActive: u.IsActive,
	}
	if u.AreaID != nil {
		f.AreaID = *u.AreaID
	}
	if f.RoleID == 0 && u.Role != nil {
		f.RoleID = u.Role.ID
	}
	return f
}

func userInput(f forms.UserFields) apiclient.UserInput {
	in := apiclient.UserInput{
		Name:          f.Name,
		Username:      f.Username,
		Email:         f.Email,
		Cedula:        f.Cedula,
		Phone:         f.Phone,
		WhatsappPhone: f.WhatsappPhone,
		RoleID:        f.RoleID,
	}
	if f.AreaID > 0 {
		area := f.AreaID
		in.AreaID = &area
	}
	return in
}

// GET /admin/users
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, r, http.StatusOK, nil)
	}
}

// POST /admin/users
func (h *UserHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParseNewUser(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			body := userInput(in.UserFields)
			body.Password = in.Password
			body.PasswordConfirmation = in.PasswordConfirmation
			u, err := h.API.CreateUser(r.Context(), body)
			if err == nil {
				h.done(w, r, fmt.Sprintf("User %s created", u.Name), usersPath)
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The user could not be created", usersPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"panel": "new", "form": in, "errors": errs})
	}
}

// POST /admin/users/{id}
func (h *UserHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		in := forms.ParseEditUser(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			body := userInput(in.UserFields)
			body.Password = in.Password
			body.PasswordConfirmation = in.PasswordConfirmation
			active := in.IsActive
			body.IsActive = &active
			_, err := h.API.UpdateUser(r.Context(), id, body)
			if err == nil {
				h.done(w, r, "User updated", usersPath)
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The user could not be updated", usersPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		target := &models.User{ID: id, Name: in.Name}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"panel": "edit", "target": target, "form": in, "errors": errs})
	}
}

// POST /admin/users/{id}/toggle-status
func (h *UserHTTP) ToggleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		if err := h.API.ToggleUserStatus(r.Context(), id); err != nil {
			h.fail(w, r, err, "The user status could not be changed", usersPath)
			return
		}
		h.done(w, r, "User status updated", usersPath)
	}
}

// POST /admin/users/{id}/delete
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		if err := h.API.DeleteUser(r.Context(), id); err != nil {
			h.fail(w, r, err, "The user could not be deleted", usersPath)
			return
		}
		h.done(w, r, "User deleted", usersPath)
	}
}

// POST /admin/users/{id}/role
func (h *UserHTTP) AssignRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		roleID := utils.QueryInt(r.PostForm, "role_id", 0)
		if roleID <= 0 {
			h.fail(w, r, errors.New("missing role"), "Select a role", usersPath)
			return
		}
		clearSpecial := utils.FormBool(r.PostForm, "clear_special")
		if err := h.API.AssignRole(r.Context(), id, roleID, clearSpecial); err != nil {
			h.fail(w, r, err, "The role could not be assigned", usersPath)
			return
		}
		h.done(w, r, "Role assigned", usersPath)
	}
}

// -----------------------------------------------------------------------------
// Per-user permission overrides
// -----------------------------------------------------------------------------

// GET /admin/user-permissions/{id}
func (h *UserHTTP) Permissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		up, err := h.API.UserPermissions(r.Context(), id)
		if err != nil {
			h.loadFailed(w, r, err, "User permissions could not be loaded")
			return
		}
		catalogue, err := h.API.ListPermissions(r.Context())
		if err != nil {
			h.loadFailed(w, r, err, "Permissions could not be loaded")
			return
		}
		overrides := editor.NewUserOverrides(up)
		target := up.User
		if target.ID == 0 {
			target.ID = id
		}
		h.render(w, r, http.StatusOK, "admin_user_permissions.html", views.Data{
			"target":         target,
			"modules":        overrides.Resolve(catalogue),
			"role_granted":   editor.RoleGranted(up),
			"override_count": overrides.OverrideCount(),
		})
	}
}

// POST /admin/user-permissions/{id}/toggle sends one toggle and reloads.
func (h *UserHTTP) TogglePermission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		back := fmt.Sprintf("/admin/user-permissions/%d", id)
		permID := utils.QueryInt(r.PostForm, "permission_id", 0)
		if permID <= 0 {
			h.fail(w, r, errors.New("missing permission"), "Select a permission", back)
			return
		}
		if err := h.API.ToggleUserPermission(r.Context(), id, permID); err != nil {
			h.fail(w, r, err, "The permission could not be changed", back)
			return
		}
		h.done(w, r, "Permission updated", back)
	}
}
