package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is returned when an operation requires a token and
// none is present. No network call is made.
var ErrUnauthenticated = errors.New("not authenticated")

// NetworkError indicates the request could not be completed at all
// (connectivity, DNS, timeout). The message is deliberately generic; the
// underlying transport error is available via Unwrap for logging only.
type NetworkError struct {
	err error
}

func (e *NetworkError) Error() string {
	return "network error, please try again"
}

func (e *NetworkError) Unwrap() error {
	return e.err
}

// APIError indicates the backend responded with a non-success status.
// Detail carries the server-supplied message when one could be read, else
// the status's standard reason phrase.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether the response was a 401. An unauthorized
// response always runs the session recovery protocol before the error is
// returned to the caller.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// ValidationError is raised for client-checkable preconditions before any
// network traffic happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsUnauthorized reports whether err is an APIError carrying a 401 status.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}

// IsNetworkError reports whether err means the request never completed, as
// opposed to the server returning an error response.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
