package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"task-desk.com/task-desk/pkg/exceptions"
)

const UserIDKey = "user_id"

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

var errNoToken = exceptions.Auth("Not authorized, no token")

// RequireToken rejects requests without a valid bearer token and stores the
// user id under UserIDKey.
func RequireToken(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return errNoToken
			}

			userID, err := auth.Authenticate(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
