package api

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate maps a 409 from the backend: the uploaded image's hash
	// matches an already-processed file.
	ErrDuplicate = errors.New("already processed")

	// ErrNotFound maps a 404 from the backend.
	ErrNotFound = errors.New("not found")
)

// StatusError carries a non-success HTTP status that is neither a
// duplicate nor a not-found.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}
