package repository

import (
	"context"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

// SessionRepository persists web sessions. Get returns (nil, nil) for an
// unknown or expired id.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}

// ExpiredPurger is implemented by stores that do not expire entries on
// their own.
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
