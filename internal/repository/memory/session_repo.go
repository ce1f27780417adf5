package memory

import (
	"context"
	"sync"
	"time"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository"
)

type SessionRepo struct {
	mu    sync.RWMutex
	items map[string]models.Session
	now   func() time.Time
}

var _ repository.SessionRepository = (*SessionRepo)(nil)

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{items: map[string]models.Session{}, now: time.Now}
}

func (r *SessionRepo) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	s, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.Expired(r.now()) {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepo) Save(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	r.items[s.ID] = *s
	r.mu.Unlock()
	return nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

// PurgeExpired drops sessions past their expiry and returns how many went.
func (r *SessionRepo) PurgeExpired(_ context.Context) (int64, error) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.items {
		if s.Expired(now) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}
