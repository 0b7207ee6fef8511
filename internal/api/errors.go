package api

import (
	"fmt"
	"strings"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// APIError records a non-success HTTP response with enough context to
// reproduce the call.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.Status)
}

// classify wraps an APIError with its error kind and user-facing hint.
func classify(e *APIError) error {
	switch {
	case strings.Contains(e.Body, "Insufficient client scope"):
		return errs.WithHint(errs.KindScopeMissing, e, "missing scope, re-login")
	case e.Status == 401:
		return errs.WithHint(errs.KindRemoteFailure, e, "token expired or invalid")
	case e.Status == 403:
		return errs.WithHint(errs.KindRemoteFailure, e, "resource read-only or missing modify scope")
	default:
		return errs.Wrap(errs.KindRemoteFailure, e)
	}
}
