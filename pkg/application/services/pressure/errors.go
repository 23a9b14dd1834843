package pressure

import "errors"

var (
	// ErrUnknownLeg indicates a declared path references a leg id the
	// topology does not contain.
	ErrUnknownLeg = errors.New("pressure: path references unknown leg")

	// ErrMissingSizing indicates a path leg has no sizing result to
	// aggregate.
	ErrMissingSizing = errors.New("pressure: leg has no sizing result")
)
