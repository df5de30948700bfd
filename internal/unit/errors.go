package unit

import "errors"

// Engine errors. Each failure mode from the algebra surfaces as one of
// these sentinels so callers can branch with errors.Is.
var (
	// ErrIncompatible means two decompositions cannot be reconciled, with
	// or without the supplied equivalencies.
	ErrIncompatible = errors.New("units are not convertible")

	// ErrInvalidConstruction covers malformed unit definitions: mismatched
	// bases/powers lengths, empty names, bad represents expressions.
	ErrInvalidConstruction = errors.New("invalid unit construction")

	// ErrZeroScale rejects units built with a scale of zero.
	ErrZeroScale = errors.New("cannot create a unit with a scale of 0")

	// ErrCompose means the composition search had no candidates or found
	// no combination reproducing the target decomposition.
	ErrCompose = errors.New("cannot represent unit in the given candidates")

	// ErrUnknownUnit is returned when a name cannot be resolved against
	// the active catalog.
	ErrUnknownUnit = errors.New("unknown unit name")

	// ErrNameConflict rejects registering a name already bound to a
	// different unit in the active registry level.
	ErrNameConflict = errors.New("unit name already registered")

	// ErrScopeExited is returned when a registry scope is exited out of
	// order or after the context stack no longer contains it.
	ErrScopeExited = errors.New("registry scope no longer active")

	// ErrUnrecognized is returned when algebra or conversion is attempted
	// on an unrecognized unit, which has no physical meaning.
	ErrUnrecognized = errors.New("unrecognized unit has no physical meaning")
)
