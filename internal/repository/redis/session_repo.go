package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository"
)

const keyPrefix = "helpdesk:session:"

type SessionRepo struct {
	rdb goredis.UniversalClient
	now func() time.Time
}

func NewSessionRepo(rdb goredis.UniversalClient) *SessionRepo {
	return &SessionRepo{rdb: rdb, now: time.Now}
}

var _ repository.SessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Save stores the session with a TTL matching its expiry so Redis evicts it.
func (r *SessionRepo) Save(ctx context.Context, s *models.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, keyPrefix+s.ID, raw, ttl).Err()
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, keyPrefix+id).Err()
}
