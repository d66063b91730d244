package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// New builds the process logger. Unknown levels fall back to info, unknown
// formats to text.
func New(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := logger.WithFields(logrus.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   res.Status,
				"ip":       c.RealIP(),
				"duration": time.Since(start).String(),
			})

			switch {
			case res.Status >= 500:
				entry.Error("request failed")
			case res.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request handled")
			}

			return nil
		}
	}
}
