package api

import (
	"errors"
	"fmt"
)

// ErrAuthExpired is returned after the backend answered 401 to an
// authenticated call. The session has already been cleared by then and the
// call must not be retried with the same credentials.
var ErrAuthExpired = errors.New("authentication expired")

// RequestError is a failed call that leaves client state untouched: a
// transport failure or a non-2xx answer other than 401.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	default:
		return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

func IsTransient(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
