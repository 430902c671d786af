package probe

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned when a successful login carries no usable token.
	ErrMissingToken = errors.New("login response has no token")
	// ErrInvalidJSON is returned when a 200 response body cannot be parsed.
	ErrInvalidJSON = errors.New("response body is not valid JSON")
)

// RequestError is a failed HTTP exchange: the request could not be sent or
// read, the context was cancelled, or a 200 body was not JSON.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// LoginError means the login endpoint answered but did not hand out a token.
type LoginError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *LoginError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("login failed: %v", e.Err)
	}
	return fmt.Sprintf("login failed: HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *LoginError) Unwrap() error {
	return e.Err
}
