package sat

import "errors"

// Sentinel errors surfaced to callers at the boundary. Internal invariant
// violations are programmer errors and panic instead (see Simplify in
// solver.go), since they must never be triggerable by valid input.
var (
	// ErrInvalidOperation is returned when a method is called in a state
	// that does not support it (e.g. adding a clause below the root
	// decision level).
	ErrInvalidOperation = errors.New("sat: invalid operation for current solver state")

	// ErrMalformedClause is returned when AddClause is given a literal that
	// references an unknown variable.
	ErrMalformedClause = errors.New("sat: malformed clause")
)
