package models

import "time"

// Session is the server-side half of a signed-in browser: the bearer token
// the API issued and the user it belongs to.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	// RefreshedAt is when User was last confirmed against /auth/me.
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
