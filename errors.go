package cubes

import "errors"

var (
	// ErrDuplicateIndex signals that an index value occurs more than once
	// within one dimension's hierarchy.
	ErrDuplicateIndex = errors.New("cubes: duplicate index value in dimension")
	// ErrNestedTotal signals that the total index was declared as, or below, a
	// child node. The total may only appear as an un-nested root.
	ErrNestedTotal = errors.New("cubes: total index nested below a child index")
	// ErrMixedTotalRoot signals a dimension declaring a total root next to
	// peer roots. A total root must be the only root.
	ErrMixedTotalRoot = errors.New("cubes: total root mixed with peer roots")
	// ErrTotalExists signals an attempt to synthesize a total root for a
	// dimension that already has one.
	ErrTotalExists = errors.New("cubes: dimension already has a total root")
	// ErrNoSuchIndex signals a non-fallback lookup of an index value that is
	// not declared in the dimension.
	ErrNoSuchIndex = errors.New("cubes: no such index value")
	// ErrPositionOutOfBounds signals a positional parameter outside the
	// current free or bound dimension count.
	ErrPositionOutOfBounds = errors.New("cubes: position out of bounds")
	// ErrTooManyValues signals more positional values than free dimensions.
	ErrTooManyValues = errors.New("cubes: more values than free dimensions")
	// ErrDuplicateDimension signals the same dimension named twice within one
	// multi-dimension slice or breakdown call.
	ErrDuplicateDimension = errors.New("cubes: duplicate dimension in one operation")
	// ErrInvalidDefinition signals a build or dimension definition with
	// missing parts (nil selector, nil aggregation functions).
	ErrInvalidDefinition = errors.New("cubes: invalid definition")
)
