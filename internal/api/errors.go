package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the service. The core components pass
// it through untranslated; callers decide whether to surface it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// ErrShareLinkNotFound marks a share link the server does not know,
// distinct from a network failure.
var ErrShareLinkNotFound = errors.New("share link not found")

// IsUnauthorized reports whether err is a 401 from the service
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the service
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
