package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// This package defines the client's error taxonomy. The backend client wraps every
// failure in one of these sentinels so that the service and UI layers can decide how
// to surface it with `errors.Is()` without knowing about HTTP.

var (
	// ErrAuth signifies that login or token validation failed. The client falls back
	// to the unauthenticated state and never retries.
	ErrAuth = errors.New("authentication failed")

	// ErrNetwork signifies that the request never produced an HTTP response
	// (connection refused, DNS failure, broken body).
	ErrNetwork = errors.New("network error")

	// ErrServer signifies a non-2xx response. The concrete *StatusError carries the
	// server-provided detail message.
	ErrServer = errors.New("server error")

	// ErrPermission signifies that the action is not allowed for the current role.
	// It is returned both for 403 responses and for client-side role gating.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound signifies that a requested resource could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input failed validation, either locally before a
	// request is issued or by the server (400/422).
	ErrValidation = errors.New("validation failed")
)

// StatusError is returned for every non-2xx backend response.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Detail)
}

// Unwrap lets errors.Is match ErrServer for every status and the more specific
// sentinel for the statuses that have one.
func (e *StatusError) Unwrap() []error {
	errs := []error{ErrServer}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		errs = append(errs, ErrAuth)
	case http.StatusForbidden:
		errs = append(errs, ErrPermission)
	case http.StatusNotFound:
		errs = append(errs, ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		errs = append(errs, ErrValidation)
	}
	return errs
}

// Reason extracts the text worth showing to a user: the server detail when there is
// one, otherwise the error string.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return statusErr.Detail
	}
	return err.Error()
}
