// Package unit implements a symbolic unit algebra: immutable units built
// as scaled products of irreducible bases raised to rational powers.
//
// # Core Types
//
// Unit is the sealed interface over four concrete variants:
//   - Irreducible: a base dimension (meter, kilogram, second)
//   - Named: an alias standing for another unit, including prefixed forms
//   - Composite: a scale factor times a product of units with exponents
//   - Unrecognized: a placeholder name that supports no arithmetic
//
// Arithmetic (Mul, Div, Pow, Reciprocal) builds composites; equal
// construction paths intern to the same pointer, so units compare cheaply
// by identity in the common case and by decomposition otherwise.
//
// # Exponents
//
// Exponent is a three-state numeric tower (integer, exact rational, float).
// Float inputs snap to nearby integers or small rationals at construction;
// exact values propagate through arithmetic without re-snapping, so a
// caller-supplied 250/1331 survives any number of operations.
//
// # Decomposition and Conversion
//
// Decompose reduces any unit to irreducible bases; GetConverter builds a
// numeric mapping between dimensionally compatible units, optionally
// bridging dimension changes through declared Equivalency transforms.
// Compose searches a candidate catalog for natural higher-level spellings
// of a decomposed unit.
//
// # Registry
//
// Catalog is an immutable-by-convention name index; Context stacks catalog
// layers so callers can enable additional unit systems inside a scope and
// restore the previous view on exit.
package unit
