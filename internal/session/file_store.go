package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

// Credentials is what the CLI keeps between runs.
type Credentials struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	SavedAt time.Time   `json:"saved_at"`
}

// FileStore keeps CLI credentials in a single 0600 JSON file.
type FileStore struct {
	path string

	mu    sync.Mutex
	cache *Credentials
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// DefaultFilePath is <user config dir>/helpdesk/credentials.json.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "helpdesk", "credentials.json"), nil
}

func (f *FileStore) Path() string { return f.path }

// Load returns (nil, nil) when nobody is logged in.
func (f *FileStore) Load() (*Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cache != nil {
		return f.cache, nil
	}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	f.cache = &c
	return f.cache, nil
}

func (f *FileStore) Save(c Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return err
	}
	f.cache = &c
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache = nil
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Token satisfies the API client's token source.
func (f *FileStore) Token(context.Context) string {
	c, err := f.Load()
	if err != nil || c == nil {
		return ""
	}
	return c.Token
}
