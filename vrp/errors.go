package vrp

import "errors"

// Sentinel errors. Callers match them with errors.Is; constructors may wrap
// them with fmt.Errorf("...: %w", ErrX) to add the offending value.
var (
	// ErrDimension is returned when the node count is below 2 (depot + one
	// customer) or when a slice does not match the instance dimension.
	ErrDimension = errors.New("vrp: invalid dimension")

	// ErrTrucks is returned when the vehicle count is below 1.
	ErrTrucks = errors.New("vrp: truck count must be >= 1")

	// ErrCapacity is returned for a non-positive, NaN or infinite capacity.
	ErrCapacity = errors.New("vrp: capacity must be finite and > 0")

	// ErrDemand is returned for a negative, NaN or infinite node demand.
	ErrDemand = errors.New("vrp: demand must be finite and >= 0")

	// ErrDistance is returned for a negative, NaN, infinite or non-zero
	// diagonal distance entry.
	ErrDistance = errors.New("vrp: invalid distance matrix entry")

	// ErrTour is returned when a tour is not a permutation of the customers
	// and depot-return markers of its instance shape.
	ErrTour = errors.New("vrp: invalid tour")
)
