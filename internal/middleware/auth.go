package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
)

// UserSource answers who the bearer token in ctx belongs to.
type UserSource interface {
	Me(ctx context.Context) (models.User, error)
}

// WithSession resolves the session cookie and puts the session into the
// request context. Requests without a valid session pass through
// anonymously; handlers and RequireSession decide what that means.
//
// A session whose user is stale is checked against me first, so role
// changes and deactivations made upstream apply within the refresh window.
func WithSession(log zerolog.Logger, mgr *session.Manager, me UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(session.CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, err := mgr.Load(r)
			if err != nil {
				log.Error().Err(err).Msg("load session")
				next.ServeHTTP(w, r)
				return
			}
			if s == nil {
				// clear broken/expired cookie so it stops being sent
				mgr.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := session.NewContext(r.Context(), s)
			if mgr.Stale(s) {
				user, err := me.Me(ctx)
				switch {
				case errors.Is(err, apiclient.ErrUnauthorized):
					// the client's 401 hook already dropped the stored session
					mgr.ClearCookie(w)
					next.ServeHTTP(w, r)
					return
				case err != nil:
					log.Warn().Err(err).Str("session", s.ID).Msg("refresh session user; keeping stored one")
				default:
					if err := mgr.Refreshed(ctx, s, user); err != nil {
						log.Warn().Err(err).Str("session", s.ID).Msg("save refreshed session")
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
