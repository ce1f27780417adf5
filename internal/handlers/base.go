package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// Base is what every page handler shares.
type Base struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Views    *views.Renderer
	Forms    *forms.Validator
	Log      zerolog.Logger

	// StorageURL is the public prefix of ticket attachments.
	StorageURL string
}

// render draws a page with the layout data every template expects: the
// signed-in user, the pending flash, the current path and the sidebar.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, data views.Data) {
	if data == nil {
		data = views.Data{}
	}
	user := session.User(r.Context())
	data["user"] = user
	data["path"] = r.URL.Path
	if f := session.PopFlash(w, r); f != nil {
		data["flash"] = f
	}
	if user != nil {
		menu, err := b.API.UserMenu(r.Context())
		switch {
		case errors.Is(err, apiclient.ErrUnauthorized):
			b.expired(w, r)
			return
		case err != nil:
			b.Log.Warn().Err(err).Msg("load sidebar menu")
		}
		data["menu"] = menu
	}
	b.Views.HTML(w, status, name, data)
}

// expired ends a session the API no longer accepts and sends the browser
// to the login page.
func (b *Base) expired(w http.ResponseWriter, r *http.Request) {
	b.Sessions.Destroy(w, r)
	session.SetFlash(w, flashError, "Your session has expired, please log in again")
	utils.Redirect(w, r, "/login")
}

// fail handles an upstream error after a form action: a 401 ends the
// session, anything else is flashed on the page at back.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		b.expired(w, r)
		return
	}
	b.Log.Warn().Err(err).Str("path", r.URL.Path).Msg("upstream call failed")
	session.SetFlash(w, flashError, apiclient.Message(err, fallback))
	utils.Redirect(w, r, back)
}

// done flashes a success message and redirects, so the next page load
// shows fresh server state.
func (b *Base) done(w http.ResponseWriter, r *http.Request, msg, to string) {
	session.SetFlash(w, flashSuccess, msg)
	utils.Redirect(w, r, to)
}

// loadFailed answers a page whose data could not be fetched.
func (b *Base) loadFailed(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		b.expired(w, r)
		return
	}
	status := http.StatusBadGateway
	if apiclient.IsNotFound(err) {
		status = http.StatusNotFound
	}
	b.Log.Warn().Err(err).Str("path", r.URL.Path).Msg("page data unavailable")
	b.Views.HTML(w, status, "error.html", views.Data{
		"status":  status,
		"message": apiclient.Message(err, fallback),
		"user":    session.User(r.Context()),
	})
}

func (b *Base) notFound(w http.ResponseWriter, r *http.Request) {
	b.Views.HTML(w, http.StatusNotFound, "error.html", views.Data{
		"status":  http.StatusNotFound,
		"message": "Page not found",
		"user":    session.User(r.Context()),
	})
}

// idParam reads a positive integer URL parameter.
func idParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil && n > 0
}

// parseForm reads a urlencoded body; a malformed body yields empty values.
func parseForm(r *http.Request) {
	_ = r.ParseForm()
}

// withAPIErrors overlays field errors the API sent on a 422.
func withAPIErrors(errs forms.Errors, err error) forms.Errors {
	api := apiclient.FieldErrors(err)
	if len(api) == 0 {
		return errs
	}
	if errs == nil {
		errs = forms.Errors{}
	}
	for k, v := range api {
		errs[k] = v
	}
	return errs
}
