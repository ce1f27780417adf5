package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository"
)

// DB is the slice of *pgxpool.Pool the repo needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type SessionRepo struct{ db DB }

func NewSessionRepo(db DB) *SessionRepo { return &SessionRepo{db: db} }

var _ repository.SessionRepository = (*SessionRepo)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS web_sessions (
	id         TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	user_data  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL,
	refreshed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
ALTER TABLE web_sessions ADD COLUMN IF NOT EXISTS refreshed_at TIMESTAMPTZ NOT NULL DEFAULT now();
CREATE INDEX IF NOT EXISTS web_sessions_expires_at_idx ON web_sessions (expires_at)`

// Migrate creates the sessions table when missing.
func (r *SessionRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate web_sessions: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	var (
		s    models.Session
		user []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, token, user_data, created_at, expires_at, refreshed_at
		FROM web_sessions WHERE id=$1 AND expires_at > now()`, id).
		Scan(&s.ID, &s.Token, &user, &s.CreatedAt, &s.ExpiresAt, &s.RefreshedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(user, &s.User); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &s, nil
}

func (r *SessionRepo) Save(ctx context.Context, s *models.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO web_sessions (id, token, user_data, created_at, expires_at, refreshed_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE
		SET token=EXCLUDED.token, user_data=EXCLUDED.user_data,
			expires_at=EXCLUDED.expires_at, refreshed_at=EXCLUDED.refreshed_at`,
		s.ID, s.Token, user, s.CreatedAt, s.ExpiresAt, s.RefreshedAt)
	return err
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM web_sessions WHERE id=$1`, id)
	return err
}

// PurgeExpired drops sessions past their expiry and returns how many went.
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
