// Package session keeps the credentials of a signed-in user: the bearer token
// and a snapshot of the user record. Callers receive the session explicitly
// and hand its token to the task client through the request context.
package session

import (
	"context"
	"time"

	"task-desk.com/task-desk/internal/client"
	model "task-desk.com/task-desk/pkg/models"
)

// DefaultTTL matches the lifetime of the token cookie.
const DefaultTTL = 7 * 24 * time.Hour

type Session struct {
	ID        string      `json:"id,omitempty" yaml:"-"`
	Token     string      `json:"token" yaml:"token"`
	User      *model.User `json:"user,omitempty" yaml:"user,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt" yaml:"expires_at"`
}

// Init starts a signed-in session.
func (s *Session) Init(token string, user *model.User, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.Token = token
	s.User = user
	s.ExpiresAt = time.Now().UTC().Add(ttl)
}

// Clear signs the session out. The ID is kept so a server-side store can
// delete what it holds under it.
func (s *Session) Clear() {
	s.Token = ""
	s.User = nil
	s.ExpiresAt = time.Time{}
}

func (s *Session) Authenticated() bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}

// Context returns ctx carrying the session's bearer token.
func (s *Session) Context(ctx context.Context) context.Context {
	if !s.Authenticated() {
		return ctx
	}
	return client.WithToken(ctx, s.Token)
}
