package cubes

import (
	"fmt"
	"strconv"
)

// Position addresses an element of a positional collection, either from the
// start (0-based) or from the end (1-based, so FromEnd(1) is the last
// element). Positions are resolved against the collection's length at the
// time of each call, never against an original length.
type Position struct {
	n       int
	fromEnd bool
}

// At addresses the n-th element from the start, 0-based.
func At(n int) Position {
	return Position{n: n}
}

// FromEnd addresses the n-th element from the end, 1-based.
func FromEnd(n int) Position {
	return Position{n: n, fromEnd: true}
}

// Last addresses the last element, FromEnd(1).
func Last() Position {
	return FromEnd(1)
}

func (p Position) String() string {
	if p.fromEnd {
		return "^" + strconv.Itoa(p.n)
	}
	return strconv.Itoa(p.n)
}

// resolve normalizes p against a collection of the given length.
func (p Position) resolve(length int) (int, error) {
	i := p.n
	if p.fromEnd {
		i = length - p.n
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("%w: position %s with length %d", ErrPositionOutOfBounds, p, length)
	}
	return i, nil
}
