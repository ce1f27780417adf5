package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
)

const CookieName = "helpdesk_session"

type Options struct {
	Secret string
	TTL    time.Duration
	Secure bool
	Log    zerolog.Logger
	// RefreshEvery bounds how long a stored user is trusted before it is
	// fetched again from the API. Defaults to five minutes.
	RefreshEvery time.Duration
}

// Manager ties the signed browser cookie to a stored session.
type Manager struct {
	repo   repository.SessionRepository
	secret string
	ttl    time.Duration
	secure bool
	log    zerolog.Logger
	now    func() time.Time

	refreshEvery time.Duration
}

func NewManager(repo repository.SessionRepository, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.RefreshEvery <= 0 {
		opts.RefreshEvery = 5 * time.Minute
	}
	return &Manager{
		repo:         repo,
		secret:       opts.Secret,
		ttl:          opts.TTL,
		secure:       opts.Secure,
		log:          opts.Log,
		now:          time.Now,
		refreshEvery: opts.RefreshEvery,
	}
}

// Start stores token and user under a fresh session id and sets the cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, token string, user models.User) (*models.Session, error) {
	now := m.now()
	s := &models.Session{
		ID:        uuid.NewString(),
		Token:       token,
		User:        user,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
		RefreshedAt: now,
	}
	if err := m.repo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	signed, err := utils.SignJWT(m.secret, s.ID, m.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
		Expires:  s.ExpiresAt,
	})
	return s, nil
}

// Load resolves the request's cookie. A missing, forged or expired cookie
// yields (nil, nil); only store failures are errors.
func (m *Manager) Load(r *http.Request) (*models.Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}
	claims, err := utils.ParseJWT(m.secret, c.Value)
	if err != nil {
		return nil, nil
	}
	s, err := m.repo.Get(r.Context(), claims.Subject)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Expired(m.now()) {
		return nil, nil
	}
	return s, nil
}

// Stale reports whether the stored user is due for a refresh.
func (m *Manager) Stale(s *models.Session) bool {
	return m.now().Sub(s.RefreshedAt) >= m.refreshEvery
}

// Refreshed replaces the session's user and stores it again.
func (m *Manager) Refreshed(ctx context.Context, s *models.Session, user models.User) error {
	s.User = user
	s.RefreshedAt = m.now()
	return m.repo.Save(ctx, s)
}

// Destroy drops the request's session and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	if s := FromContext(r.Context()); s != nil {
		m.delete(r.Context(), s.ID)
	} else if c, err := r.Cookie(CookieName); err == nil {
		if claims, err := utils.ParseJWT(m.secret, c.Value); err == nil {
			m.delete(r.Context(), claims.Subject)
		}
	}
	m.ClearCookie(w)
}

// DestroyContext drops the session carried by ctx. It is the API client's
// 401 callback, so it cannot touch the response; the handler that sees
// ErrUnauthorized clears the cookie.
func (m *Manager) DestroyContext(ctx context.Context) {
	if s := FromContext(ctx); s != nil {
		m.delete(ctx, s.ID)
		s.Token = ""
	}
}

func (m *Manager) delete(ctx context.Context, id string) {
	if err := m.repo.Delete(ctx, id); err != nil {
		m.log.Warn().Err(err).Str("session", id).Msg("delete session failed")
	}
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
