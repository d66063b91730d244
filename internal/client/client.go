// Package client talks to the remote task API. Failures come back as
// *exceptions.Exception values carrying the store's own message; nothing is
// retried or cached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"task-desk.com/task-desk/pkg/exceptions"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout bounds every request. It applies to a copy of the HTTP client,
// so a client passed through WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithBreaker makes the client fail fast once the store keeps failing at the
// transport level. Validation, auth and not-found answers never trip it.
func WithBreaker(name string) Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !errors.Is(err, exceptions.ErrNetwork) || canceled(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).
					Warn("task store circuit breaker changed state")
			},
		})
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.breaker == nil {
		return c.roundTrip(ctx, method, path, body, out)
	}

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return exceptions.Network("task store unavailable, try again later", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).WithError(err).Debug("task store request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return exceptions.Network("could not reach the task store", err)
	}
	defer res.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   res.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("task store request")

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return exceptions.Network("could not read the task store response", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return exceptions.Network("unexpected response from the task store", err)
	}

	return nil
}

// canceled reports whether err comes from the caller giving up rather than
// from the store.
func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func decodeError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	var body errorBody
	message := ""
	if json.Unmarshal(raw, &body) == nil {
		message = body.Message
		if message == "" {
			message = body.Error
		}
	}
	if message == "" {
		message = lowerStatusText(res.StatusCode)
	}

	return exceptions.FromStatus(res.StatusCode, message)
}

func lowerStatusText(code int) string {
	return strings.ToLower(http.StatusText(code))
}
