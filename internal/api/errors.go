package api

import (
	"errors"
	"fmt"
)

// HTTPStatusError is a non-2xx response. Error returns only the message so
// callers can surface it to users verbatim.
type HTTPStatusError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *HTTPStatusError) Error() string {
	return e.Message
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an
// HTTPStatusError.
func StatusCode(err error) int {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNetworkError reports whether err came from the transport.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
