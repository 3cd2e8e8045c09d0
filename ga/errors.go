package ga

import "errors"

var (
	// ErrConfig reports an invalid Config or constructor argument.
	ErrConfig = errors.New("ga: invalid configuration")

	// ErrInvariantViolation reports a broken engine invariant: population
	// size drift, an unstamped chromosome, or a phase run before Initialize.
	ErrInvariantViolation = errors.New("ga: invariant violation")

	// ErrConstructionFailed is returned when no new unique individual could
	// be built within Config.MaxAttempts tries.
	ErrConstructionFailed = errors.New("ga: construction failed")
)
