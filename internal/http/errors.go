package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"task-desk.com/task-desk/pkg/exceptions"
)

// ErrorHandler answers every failed request with {"message": ...}, plus
// {"fields": {...}} for per-field validation errors. Exceptions keep their
// status; anything unexpected becomes a logged 500.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"
		var fields map[string]string

		var appErr *exceptions.Exception
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = exceptions.StatusCode(appErr)
			message = appErr.Message
			fields = appErr.Fields
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		default:
			log.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			body := echo.Map{"message": message}
			if len(fields) > 0 {
				body["fields"] = fields
			}
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.WithError(writeErr).Warn("failed to write error response")
		}
	}
}
