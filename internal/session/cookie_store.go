package session

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"

	model "task-desk.com/task-desk/pkg/models"
)

const (
	TokenCookie = "token"
	UserCookie  = "user"
)

// CookieStore keeps the session in the browser: the token in a cookie that
// lives for the session TTL and the user snapshot in a cookie that lasts for
// the browser session only.
type CookieStore struct {
	opts CookieOptions
}

func NewCookieStore(opts CookieOptions) *CookieStore {
	return &CookieStore{opts: opts}
}

func (s *CookieStore) Load(c echo.Context) (*Session, error) {
	sess := &Session{}

	token, err := c.Cookie(TokenCookie)
	if err != nil || token.Value == "" {
		return sess, nil
	}
	sess.Token = token.Value

	if uc, err := c.Cookie(UserCookie); err == nil && uc.Value != "" {
		sess.User = decodeUser(uc.Value)
	}

	return sess, nil
}

func (s *CookieStore) Save(c echo.Context, sess *Session) error {
	c.SetCookie(s.opts.cookie(TokenCookie, sess.Token, int(s.opts.ttl()/time.Second)))

	if sess.User != nil {
		raw, err := json.Marshal(sess.User)
		if err != nil {
			return err
		}
		c.SetCookie(s.opts.cookie(UserCookie, base64.RawURLEncoding.EncodeToString(raw), 0))
	}

	return nil
}

func (s *CookieStore) Clear(c echo.Context, sess *Session) error {
	c.SetCookie(s.opts.cookie(TokenCookie, "", -1))
	c.SetCookie(s.opts.cookie(UserCookie, "", -1))
	sess.Clear()
	return nil
}

// decodeUser returns nil for an unreadable cookie; the caller then refetches
// the profile.
func decodeUser(v string) *model.User {
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		return nil
	}
	return &u
}
