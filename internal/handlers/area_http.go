package handlers

import (
	"fmt"
	"net/http"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/listing"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

type AreaHTTP struct {
	*Base
}

func NewAreaHTTP(b *Base) *AreaHTTP { return &AreaHTTP{Base: b} }

const areasPath = "/admin/areas"

func (h *AreaHTTP) page(w http.ResponseWriter, r *http.Request, status int, extra views.Data) {
	q := listing.FromValues(r.URL.Query())
	areas, err := h.API.ListAreas(r.Context(), q.Values())
	if err != nil {
		h.loadFailed(w, r, err, "Areas could not be loaded")
		return
	}
	data := views.Data{
		"areas": areas.Data,
		"pager": listing.NewPager(q, areas),
		"query": q,
		"form":  forms.AreaForm{},
	}
	if id := utils.QueryInt(r.URL.Query(), "edit", 0); id > 0 && extra == nil {
		for i := range areas.Data {
			if a := areas.Data[i]; a.ID == id {
				data["target"] = &areas.Data[i]
				data["form"] = forms.AreaForm{Name: a.Name, Description: a.Description}
			}
		}
	}
	for k, v := range extra {
		data[k] = v
	}
	h.render(w, r, status, "admin_areas.html", data)
}

// GET /admin/areas
func (h *AreaHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.page(w, r, http.StatusOK, nil)
	}
}

// POST /admin/areas
func (h *AreaHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParseArea(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			a, err := h.API.CreateArea(r.Context(), apiclient.AreaInput{Name: in.Name, Description: in.Description})
			if err == nil {
				h.done(w, r, fmt.Sprintf("Area %s created", a.Name), areasPath)
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The area could not be created", areasPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"form": in, "errors": errs})
	}
}

// POST /admin/areas/{id}
func (h *AreaHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		in := forms.ParseArea(r.PostForm)
		errs := h.Forms.Check(in)
		if !errs.Any() {
			_, err := h.API.UpdateArea(r.Context(), id, apiclient.AreaInput{Name: in.Name, Description: in.Description})
			if err == nil {
				h.done(w, r, "Area updated", areasPath)
				return
			}
			if !apiclient.IsUnprocessable(err) {
				h.fail(w, r, err, "The area could not be updated", areasPath)
				return
			}
			errs = withAPIErrors(errs, err)
		}
		target := &models.Area{ID: id, Name: in.Name}
		h.page(w, r, http.StatusUnprocessableEntity, views.Data{"target": target, "form": in, "errors": errs})
	}
}

// POST /admin/areas/{id}/delete. The API refuses with a 422 while users
// still belong to the area.
func (h *AreaHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		if err := h.API.DeleteArea(r.Context(), id); err != nil {
			fallback := "The area could not be deleted"
			if apiclient.IsUnprocessable(err) {
				fallback = "The area has assigned users and cannot be deleted"
			}
			h.fail(w, r, err, fallback, areasPath)
			return
		}
		h.done(w, r, "Area deleted", areasPath)
	}
}
