package handlers

import (
	"errors"
	"net/http"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/service"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

type AuthHTTP struct {
	*Base
	svc *service.AuthService
}

func NewAuthHTTP(b *Base, s *service.AuthService) *AuthHTTP {
	return &AuthHTTP{Base: b, svc: s}
}

func (h *AuthHTTP) LoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.User(r.Context()) != nil {
			utils.Redirect(w, r, "/dashboard")
			return
		}
		h.render(w, r, http.StatusOK, "login.html", nil)
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParseLogin(r.PostForm)
		data := views.Data{"login": in.Login}

		if errs := h.Forms.Check(in); errs.Any() {
			data["errors"] = errs
			h.render(w, r, http.StatusUnprocessableEntity, "login.html", data)
			return
		}

		if _, err := h.svc.Login(r.Context(), w, in.Login, in.Password); err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, service.ErrInvalidCredentials) && !errors.Is(err, apiclient.ErrUnauthorized) {
				h.Log.Warn().Err(err).Msg("login failed")
				status = http.StatusUnprocessableEntity
			}
			data["error"] = apiclient.Message(err, "Invalid credentials")
			data["errors"] = withAPIErrors(nil, err)
			h.render(w, r, status, "login.html", data)
			return
		}
		utils.Redirect(w, r, "/dashboard")
	}
}

func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.svc.Logout(w, r)
		utils.Redirect(w, r, "/login")
	}
}
