package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// run executes the root command against a fake API with a temp credentials file.
func run(t *testing.T, api, creds string, args ...string) (string, error) {
	t.Helper()
	jsonFlag = false
	loginFlag, passwordFlag = "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--api", api, "--credentials", creds}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok-1",
				"user":  map[string]any{"id": 3, "name": "Ana", "email": "ana@example.com", "role": map[string]any{"name": "agente"}},
			})
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": 3, "name": "Ana", "email": "ana@example.com", "role": map[string]any{"name": "agente"}})
		case "/api/tickets":
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		case "/api/portal/tickets/search":
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "No ticket with that number"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginThenWhoami(t *testing.T) {
	srv := fakeAPI(t)
	creds := filepath.Join(t.TempDir(), "credentials.json")

	out, err := run(t, srv.URL+"/api", creds, "login", "--login", "ana", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ana (agente)")

	c, err := session.NewFileStore(creds).Load()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "tok-1", c.Token)

	out, err = run(t, srv.URL+"/api", creds, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana <ana@example.com>")
}

func TestUnauthorizedClearsCredentials(t *testing.T) {
	srv := fakeAPI(t)
	creds := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, session.NewFileStore(creds).Save(session.Credentials{Token: "stale"}))

	_, err := run(t, srv.URL+"/api", creds, "tickets", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")

	_, statErr := os.Stat(creds)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCommandsNeedLogin(t *testing.T) {
	srv := fakeAPI(t)
	_, err := run(t, srv.URL+"/api", filepath.Join(t.TempDir(), "none.json"), "tickets", "show", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestPortalSearchShowsServerMessage(t *testing.T) {
	srv := fakeAPI(t)
	_, err := run(t, srv.URL+"/api", filepath.Join(t.TempDir(), "c.json"), "portal", "search", "tk-404")
	require.Error(t, err)
	assert.Equal(t, "No ticket with that number", err.Error())
}

func TestPortalSubmitValidatesLocally(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1/api", filepath.Join(t.TempDir(), "c.json"),
		"portal", "submit", "--name", "Ana", "--email", "ana@example.com", "--area", "IT", "--description", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The description field must be at least 10 characters")
}

func TestReadUploadRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(6<<20))
	require.NoError(t, f.Close())

	_, err = readUpload(path)
	require.Error(t, err)
	assert.Equal(t, "attachment "+path+" exceeds 5 MB", err.Error())
}

func TestTicketsStatusFlagFiltersByName(t *testing.T) {
	flag := ticketsListCmd.Flags().Lookup("status")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "status name")
}
