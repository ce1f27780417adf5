package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
)

// RequireSession sends visitors without a session to the login page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := session.FromContext(r.Context()); s == nil || s.Token == "" {
			utils.Redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DenyRequesters blocks ticket actions for roles that may only file
// tickets. The user lands back on the ticket with an error message.
func DenyRequesters(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.User(r.Context()).IsRequester() {
			session.SetFlash(w, "error", "Your role cannot perform actions on tickets")
			back := "/tickets"
			if id := chi.URLParam(r, "id"); id != "" {
				back += "/" + id
			}
			utils.Redirect(w, r, back)
			return
		}
		next.ServeHTTP(w, r)
	})
}
