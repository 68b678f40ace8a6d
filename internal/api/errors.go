// Package api provides the MEETA DRIVE REST client and its error types.
package api

import (
	"errors"
	"fmt"
)

// HTTPError is returned when the backend responds with a status outside
// [200,300). The status code is carried verbatim; no interpretation of
// specific codes is attempted.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Status)
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsHTTPStatus reports whether err carries the given HTTP status.
func IsHTTPStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}

// IsSuccess reports whether an HTTP status code counts as success.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
