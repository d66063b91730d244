package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Store persists sessions across requests of the web front. Load never
// returns a nil session: a visitor without one gets an empty Session.
type Store interface {
	Load(c echo.Context) (*Session, error)
	Save(c echo.Context, s *Session) error
	Clear(c echo.Context, s *Session) error
}

type CookieOptions struct {
	Path   string
	Secure bool
	TTL    time.Duration
}

func (o CookieOptions) cookie(name, value string, maxAge int) *http.Cookie {
	path := o.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		Secure:   o.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o CookieOptions) ttl() time.Duration {
	if o.TTL <= 0 {
		return DefaultTTL
	}
	return o.TTL
}
