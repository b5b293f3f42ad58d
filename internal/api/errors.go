package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response from the backend. Message carries the
// server-provided error string when the body had one.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// IsConflict reports whether this is a 409, the backend's signal for a
// business-rule violation such as a task already completed at its cap.
func (e *StatusError) IsConflict() bool {
	return e.Status == http.StatusConflict
}

// IsConflict reports whether err wraps a 409 StatusError.
func IsConflict(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.IsConflict()
}

// ErrorMessage extracts the server-provided message from err, or returns
// fallback when the error carries none.
func ErrorMessage(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// DecodeError is a response that did not match the endpoint's schema.
type DecodeError struct {
	Endpoint string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %s", e.Endpoint, e.Reason)
}
