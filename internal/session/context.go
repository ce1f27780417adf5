package session

import (
	"context"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

type ctxKey struct{}

func NewContext(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(ctxKey{}).(*models.Session)
	return s
}

// Token is the bearer token of the session in ctx, or "".
func Token(ctx context.Context) string {
	if s := FromContext(ctx); s != nil {
		return s.Token
	}
	return ""
}

// User is the signed-in user, or nil.
func User(ctx context.Context) *models.User {
	if s := FromContext(ctx); s != nil {
		return &s.User
	}
	return nil
}
