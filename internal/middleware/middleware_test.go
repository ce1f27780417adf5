package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository/memory"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

func withUser(r *http.Request, role string) *http.Request {
	s := &models.Session{ID: "s1", Token: "tok", User: models.User{Role: &models.RoleRef{Name: role}}}
	return r.WithContext(session.NewContext(r.Context(), s))
}

func TestRequestIDMintsAndReuses(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}

func TestRequireSession(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireSession(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	RequireSession(ok).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/tickets", nil), "admin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDenyRequesters(t *testing.T) {
	r := chi.NewRouter()
	r.With(DenyRequesters).Post("/tickets/{id}/close", ok)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/tickets/9/close", nil), "usuario"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tickets/9", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/tickets/9/close", nil), "agente"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithSession(t *testing.T) {
	mgr := session.NewManager(memory.NewSessionRepo(), session.Options{Secret: "s", TTL: time.Hour, Log: zerolog.Nop()})
	start := httptest.NewRecorder()
	_, err := mgr.Start(httptest.NewRequest(http.MethodGet, "/", nil).Context(), start, "tok-1", models.User{Name: "Ana"})
	require.NoError(t, err)
	cookie := start.Result().Cookies()[0]

	var got *models.Session
	h := WithSession(zerolog.Nop(), mgr, fixedUser{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.Token)

	got = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Nil(t, got)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

type fixedUser struct {
	user  models.User
	err   error
	calls *int
}

func (f fixedUser) Me(context.Context) (models.User, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.user, f.err
}

func startSession(t *testing.T, mgr *session.Manager) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	_, err := mgr.Start(context.Background(), rec, "tok-1", models.User{Name: "Ana", Role: &models.RoleRef{Name: "admin"}})
	require.NoError(t, err)
	return rec.Result().Cookies()[0]
}

func TestWithSessionRefreshesStaleUser(t *testing.T) {
	mgr := session.NewManager(memory.NewSessionRepo(), session.Options{Secret: "s", TTL: time.Hour, RefreshEvery: time.Nanosecond, Log: zerolog.Nop()})
	cookie := startSession(t, mgr)

	calls := 0
	src := fixedUser{user: models.User{Name: "Ana", Role: &models.RoleRef{Name: "usuario"}}, calls: &calls}
	var got *models.Session
	h := WithSession(zerolog.Nop(), mgr, src)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	}))

	time.Sleep(time.Millisecond)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "usuario", got.User.Role.Name)

	stored, err := mgr.Load(req)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "usuario", stored.User.Role.Name)
}

func TestWithSessionSkipsFreshUser(t *testing.T) {
	mgr := session.NewManager(memory.NewSessionRepo(), session.Options{Secret: "s", TTL: time.Hour, RefreshEvery: time.Hour, Log: zerolog.Nop()})
	cookie := startSession(t, mgr)

	calls := 0
	h := WithSession(zerolog.Nop(), mgr, fixedUser{calls: &calls})(ok)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Zero(t, calls)
}

func TestWithSessionRefreshFailures(t *testing.T) {
	mgr := session.NewManager(memory.NewSessionRepo(), session.Options{Secret: "s", TTL: time.Hour, RefreshEvery: time.Nanosecond, Log: zerolog.Nop()})
	cookie := startSession(t, mgr)
	time.Sleep(time.Millisecond)

	var got *models.Session
	capture := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
	})

	// an unreachable API keeps the stored user
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	WithSession(zerolog.Nop(), mgr, fixedUser{err: errors.New("connection refused")})(capture).ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, "admin", got.User.Role.Name)

	// a rejected token drops to anonymous and clears the cookie
	got = nil
	rec := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	WithSession(zerolog.Nop(), mgr, fixedUser{err: apiclient.ErrUnauthorized})(capture).ServeHTTP(rec, req)
	assert.Nil(t, got)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
