package web

import (
	"errors"

	"github.com/labstack/echo/v4"

	"task-desk.com/task-desk/internal/session"
	"task-desk.com/task-desk/pkg/exceptions"
)

const sessionKey = "session"

var errNotSignedIn = exceptions.Auth("Not authorized, please log in")

// requireSession loads the caller's session and rejects anonymous requests.
// A session without a user snapshot gets one from the store's profile
// endpoint; a token the store no longer accepts ends the session.
func (h *Handler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := h.sessions.Load(c)
		if err != nil {
			return err
		}
		if !sess.Authenticated() {
			return errNotSignedIn
		}

		if sess.User == nil {
			user, err := h.api.Profile(sess.Context(c.Request().Context()))
			if err != nil {
				if errors.Is(err, exceptions.ErrAuth) {
					_ = h.sessions.Clear(c, sess)
					return errNotSignedIn
				}
				return err
			}
			sess.User = user
			if err := h.sessions.Save(c, sess); err != nil {
				h.log.WithError(err).Warn("failed to refresh session user")
			}
		}

		c.Set(sessionKey, sess)
		return next(c)
	}
}

func currentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	if sess == nil {
		return &session.Session{}
	}
	return sess
}
