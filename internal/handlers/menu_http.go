package handlers

import (
	"fmt"
	"net/http"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/editor"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

type MenuHTTP struct {
	*Base
}

func NewMenuHTTP(b *Base) *MenuHTTP { return &MenuHTTP{Base: b} }

const menuPath = "/admin/menu"

func (h *MenuHTTP) page(w http.ResponseWriter, r *http.Request, status int, extra views.Data) {
	ctx := r.Context()
	roles, err := h.API.ListRoles(ctx)
	if err != nil {
		h.loadFailed(w, r, err, "Roles could not be loaded")
		return
	}
	items, err := h.API.ListMenuItems(ctx)
	if err != nil {
		h.loadFailed(w, r, err, "Menu items could not be loaded")
		return
	}

	data := views.Data{
		"roles":     roles,
		"items":     items,
		"item_form": forms.MenuItemForm{IsActive: true},
	}
	if sel := findRole(roles, utils.QueryInt(r.URL.Query(), "role", 0)); sel != nil {
		tree, err := h.API.RoleMenu(ctx, sel.ID)
		if err != nil {
			h.loadFailed(w, r, err, "The role's menu could not be loaded")
			return
		}
		data["selected"] = sel
		data["tree"] = editor.NewMenuVisibility(sel.ID, tree)
	}
	for k, v := range extra {
		data[k] = v
	}
	h.render(w, r, status, "admin_menu.html", data)
}

// GET /admin/menu
func (h *MenuHTTP) Page() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, r, http.StatusOK, nil)
	}
}

// POST /admin/menu/{id}
func (h *MenuHTTP) Save() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		back := fmt.Sprintf("%s?role=%d", menuPath, id)

		tree, err := h.API.RoleMenu(r.Context(), id)
		if err != nil {
			h.fail(w, r, err, "The role's menu could not be loaded", back)
			return
		}
		mv := editor.NewMenuVisibility(id, tree)
		mv.ApplyForm(r.PostForm)
		if err := h.API.SaveRoleMenu(r.Context(), id, mv.Entries()); err != nil {
			h.fail(w, r, err, "The menu could not be saved", back)
			return
		}
		h.done(w, r, "Menu saved", back)
	}
}

// POST /admin/menu/items
func (h *MenuHTTP) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParseMenuItem(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			body := apiclient.MenuItemInput{
				Key:      in.Key,
				Label:    in.Label,
				Icon:     in.Icon,
				Route:    in.Route,
				Order:    in.Order,
				IsActive: in.IsActive,
			}
			if in.ParentID > 0 {
				parent := in.ParentID
				body.ParentID = &parent
			}
			_, err := h.API.CreateMenuItem(r.Context(), body)
			if err == nil {
				h.done(w, r, "Menu item created", menuPath)
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The menu item could not be created", menuPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"item_form": in, "item_errors": errs})
	}
}
