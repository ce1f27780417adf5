package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator is the part of the API client sign-in needs.
type Authenticator interface {
	Login(ctx context.Context, login, password string) (apiclient.LoginResult, error)
	Logout(ctx context.Context) error
}

type AuthService struct {
	api      Authenticator
	sessions *session.Manager
	log      zerolog.Logger
}

func NewAuthService(api Authenticator, sessions *session.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, log: log}
}

// Login signs in against the API and starts a browser session holding
// the returned token and user.
func (a *AuthService) Login(ctx context.Context, w http.ResponseWriter, login, password string) (*models.Session, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	res, err := a.api.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, ErrInvalidCredentials
	}

	s, err := a.sessions.Start(ctx, w, res.Token, res.User)
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("user_id", res.User.ID).Str("role", res.User.RoleName()).Msg("signed in")
	return s, nil
}

// Logout tells the API to revoke the token, then always drops the local
// session; an upstream failure is only logged.
func (a *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	if session.Token(r.Context()) != "" {
		if err := a.api.Logout(r.Context()); err != nil {
			a.log.Warn().Err(err).Msg("upstream logout failed")
		}
	}
	a.sessions.Destroy(w, r)
}
