package cubes

import "fmt"

// indexTable is an order-preserving lookup from index values to payloads,
// with one reserved slot for the dimension total. Concrete values live in a
// regular map; the total, which has no value of T to key on, occupies the
// extra slot. Both are reached through the same accessors.
type indexTable[T comparable, U any] struct {
	order    []Index[T] // insertion order, total included where inserted
	concrete map[T]U
	total    U
	hasTotal bool
}

func newIndexTable[T comparable, U any]() *indexTable[T, U] {
	return &indexTable[T, U]{concrete: make(map[T]U)}
}

// insert registers a payload under an index value. Registering the total
// twice, or a concrete value twice, is a construction error.
func (tbl *indexTable[T, U]) insert(ix Index[T], payload U) error {
	if ix.IsTotal() {
		if tbl.hasTotal {
			return fmt.Errorf("%w: total registered twice", ErrDuplicateIndex)
		}
		tbl.total = payload
		tbl.hasTotal = true
	} else {
		if _, ok := tbl.concrete[ix.value]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateIndex, ix.value)
		}
		tbl.concrete[ix.value] = payload
	}
	tbl.order = append(tbl.order, ix)
	return nil
}

// get is the non-fallback lookup: asking for an index value that was never
// inserted is a usage error.
func (tbl *indexTable[T, U]) get(ix Index[T]) (U, error) {
	if payload, ok := tbl.find(ix); ok {
		return payload, nil
	}
	var zero U
	return zero, fmt.Errorf("%w: %s", ErrNoSuchIndex, ix)
}

// find is the tolerant lookup.
func (tbl *indexTable[T, U]) find(ix Index[T]) (U, bool) {
	if ix.IsTotal() {
		return tbl.total, tbl.hasTotal
	}
	payload, ok := tbl.concrete[ix.value]
	return payload, ok
}

func (tbl *indexTable[T, U]) len() int {
	return len(tbl.order)
}

// keys returns the inserted index values in insertion order.
func (tbl *indexTable[T, U]) keys() []Index[T] {
	return tbl.order
}
