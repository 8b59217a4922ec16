package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrConnection indicates that no response was received at all (DNS failure,
// refused connection, timeout). Distinguished from server-side errors so
// callers can show a connectivity message instead of a server message.
var ErrConnection = errors.New("could not reach the server")

// Error is a non-2xx response from the server. Message carries the
// server-provided error text when the body contained one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

// IsUnauthorized reports whether err is a 401 response. These are handled
// centrally by the client's session-invalidated handler; callers normally
// only see them when a login attempt itself fails.
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 response. The session stays
// intact; the caller presents a permissions message.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response. Callers refresh their
// lists where applicable.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// ErrorMessage extracts the server-provided message from err, or returns a
// generic connectivity message when no response was received.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrConnection) {
		return "Could not connect to the server. Please check your connection and try again."
	}
	return err.Error()
}

func statusIs(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
