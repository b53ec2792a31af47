package types

import "errors"

// Engine error kinds. Callers discriminate with errors.Is; the engine wraps
// these with client_id/plan_id/stage context and never retries locally.
var (
	// ErrContextUnavailable: the client context could not be loaded.
	ErrContextUnavailable = errors.New("client context unavailable")
	// ErrRecommendationFailed: the strategy failed; nothing was persisted.
	ErrRecommendationFailed = errors.New("recommendation failed")
	// ErrNotFound: plan, client or series missing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition: the plan is not in a state that allows the
	// requested status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConcurrentModification: a conflicting in-flight mutation for the
	// same client was detected; the caller may retry the whole operation.
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrPersistenceFailure: the store failed; safe to retry from the start.
	ErrPersistenceFailure = errors.New("persistence failure")
)
