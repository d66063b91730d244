package exceptions

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindNotFound
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	}
	return "unknown"
}

// Exception is the single error type surfaced by the task client and both
// HTTP surfaces. errors.Is matches any Exception against the sentinel of its
// kind (ErrValidation, ErrAuth, ErrNotFound, ErrNetwork).
type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
	// Fields holds one message per invalid input field, keyed by its JSON name.
	Fields map[string]string

	sentinel bool
}

func (e *Exception) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	if t.sentinel {
		return t.Kind == e.Kind
	}
	return t == e
}

func newKind(kind Kind, message string, status int) *Exception {
	return &Exception{Kind: kind, Message: message, StatusCode: status, sentinel: true}
}

var (
	ErrValidation = newKind(KindValidation, "validation failed", http.StatusBadRequest)
	ErrAuth       = newKind(KindAuth, "authentication required", http.StatusUnauthorized)
	ErrNotFound   = newKind(KindNotFound, "not found", http.StatusNotFound)
	ErrNetwork    = newKind(KindNetwork, "task store unavailable", http.StatusBadGateway)
)

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message of err, or fallback when err is not
// an Exception.
func Message(err error, fallback string) string {
	var appErr *Exception
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
