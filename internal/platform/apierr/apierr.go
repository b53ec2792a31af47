package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromDomain maps an engine error to the HTTP status and stable error code
// the API layer reports. Unknown errors fall through as 500s.
func FromDomain(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrInvalidTransition):
		return New(http.StatusConflict, "invalid_transition", err)
	case errors.Is(err, types.ErrConcurrentModification):
		return New(http.StatusConflict, "concurrent_modification", err)
	case errors.Is(err, types.ErrContextUnavailable):
		return New(http.StatusFailedDependency, "context_unavailable", err)
	case errors.Is(err, types.ErrRecommendationFailed):
		return New(http.StatusUnprocessableEntity, "recommendation_failed", err)
	case errors.Is(err, types.ErrPersistenceFailure):
		return New(http.StatusServiceUnavailable, "persistence_failure", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
