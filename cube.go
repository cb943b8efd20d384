package cubes

import (
	"fmt"
	"iter"
	"slices"
)

// Cube is an immutable, queryable view over a built aggregate: a flat map
// from composite keys to aggregated values, the list of dimensions fixed at
// build time, and the history of slice operations that produced this view.
//
// No cube is ever mutated after construction. Slicing returns a new view
// sharing the cell map and dimensions by reference, differing only in its
// bindings, so derived views are safe for unsynchronized concurrent use.
type Cube[T comparable, V any] struct {
	cells map[cellKey]V
	dims  []*Dimension[T]
	seed  V
	kind  AggKind
	bound []binding[T] // in slice-application order, not sorted by dimension
	free  []int        // original dimension numbers still free, in original order
}

// binding records one slice step: an original dimension number pinned to an
// index value (which need not be declared by the dimension).
type binding[T comparable] struct {
	dim   int
	index Index[T]
}

// Bound is one introspected slice step: the pinned dimension and index value,
// in the order bindings were applied.
type Bound[T comparable] struct {
	Dimension *Dimension[T]
	Index     Index[T]
}

func newCube[S any, T comparable, V any](cells map[cellKey]V, dims []*Dimension[T], agg *AggregationDef[S, V]) *Cube[T, V] {
	free := make([]int, len(dims))
	for i := range dims {
		free[i] = i
	}
	return &Cube[T, V]{
		cells: cells,
		dims:  dims,
		seed:  agg.Seed,
		kind:  agg.kind,
		free:  free,
	}
}

// derive creates the view reached by extending the binding history. Cells,
// dimensions, seed and kind are shared; only bindings and the free list
// differ.
func (c *Cube[T, V]) derive(bound []binding[T]) *Cube[T, V] {
	free := make([]int, 0, len(c.dims)-len(bound))
	for i := range c.dims {
		pinned := false
		for _, b := range bound {
			if b.dim == i {
				pinned = true
				break
			}
		}
		if !pinned {
			free = append(free, i)
		}
	}
	return &Cube[T, V]{
		cells: c.cells,
		dims:  c.dims,
		seed:  c.seed,
		kind:  c.kind,
		bound: bound,
		free:  free,
	}
}

// --- Point lookups ---------------------------------------------------------

// GetValue answers the cell addressed by the current bindings plus the given
// values. The values fill the free dimensions left to right; free dimensions
// beyond the given values are addressed at their total. With no arguments
// GetValue answers the view's grand total.
//
// A miss is not an error: a fully-formed key that no source record
// contributed to answers the aggregation's seed, exactly like a total over
// zero records. Only passing more values than there are free dimensions is an
// error.
func (c *Cube[T, V]) GetValue(values ...Index[T]) (V, error) {
	if len(values) > len(c.free) {
		return c.seed, fmt.Errorf("%w: %d values, %d free dimensions",
			ErrTooManyValues, len(values), len(c.free))
	}
	ordinals := make([]uint32, len(c.dims))
	for _, b := range c.bound {
		ordinals[b.dim] = c.dims[b.dim].ordinal(b.index)
	}
	for i, value := range values {
		dim := c.free[i]
		ordinals[dim] = c.dims[dim].ordinal(value)
	}
	if value, ok := c.cells[encodeKey(ordinals)]; ok {
		return value, nil
	}
	return c.seed, nil
}

// --- Slicing ----------------------------------------------------------------

// Binding names one dimension to pin in a multi-dimension slice. Dim is
// resolved against the free dimensions as they are before the whole slice
// takes effect.
type Binding[T comparable] struct {
	Dim   Position
	Index Index[T]
}

// Slice pins the leading free dimensions to the given values, one dimension
// per value, and returns the narrowed view. Slice(v) is the idiomatic "index
// into the first free dimension" shorthand.
func (c *Cube[T, V]) Slice(values ...Index[T]) (*Cube[T, V], error) {
	if len(values) > len(c.free) {
		return nil, fmt.Errorf("%w: %d values, %d free dimensions",
			ErrTooManyValues, len(values), len(c.free))
	}
	bound := slices.Clone(c.bound)
	for i, value := range values {
		bound = append(bound, binding[T]{dim: c.free[i], index: value})
	}
	return c.derive(bound), nil
}

// SliceDim pins one free dimension, addressed by position, to a value.
// After the slice the remaining free dimensions renumber contiguously from 0.
func (c *Cube[T, V]) SliceDim(at Position, value Index[T]) (*Cube[T, V], error) {
	return c.SliceDims(Binding[T]{Dim: at, Index: value})
}

// SliceDims pins several free dimensions at once. All positions are resolved
// against the same pre-slice free-dimension numbering before any binding
// takes effect; naming the same dimension twice is an error.
func (c *Cube[T, V]) SliceDims(bindings ...Binding[T]) (*Cube[T, V], error) {
	resolved, err := c.resolveFree(bindingPositions(bindings))
	if err != nil {
		return nil, err
	}
	bound := slices.Clone(c.bound)
	for i, b := range bindings {
		bound = append(bound, binding[T]{dim: resolved[i], index: b.Index})
	}
	return c.derive(bound), nil
}

func bindingPositions[T comparable](bindings []Binding[T]) []Position {
	positions := make([]Position, len(bindings))
	for i, b := range bindings {
		positions[i] = b.Dim
	}
	return positions
}

// resolveFree maps positions over the current free dimensions to original
// dimension numbers, rejecting duplicates.
func (c *Cube[T, V]) resolveFree(positions []Position) ([]int, error) {
	resolved := make([]int, len(positions))
	for i, pos := range positions {
		at, err := pos.resolve(len(c.free))
		if err != nil {
			return nil, err
		}
		resolved[i] = c.free[at]
	}
	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			if resolved[i] == resolved[j] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateDimension,
					c.dims[resolved[i]].Title())
			}
		}
	}
	return resolved, nil
}

// --- Breakdown ---------------------------------------------------------------

// Breakdown enumerates one slice per combination of the named free
// dimensions' declared indexes, in declared enumeration order, with the first
// named dimension varying slowest and the last varying fastest. Called with
// no dimensions it yields just the receiver.
//
// Positions are validated up front; the returned sequence may be ranged over
// multiple times.
func (c *Cube[T, V]) Breakdown(dims ...Position) (iter.Seq[*Cube[T, V]], error) {
	if len(dims) == 0 {
		return func(yield func(*Cube[T, V]) bool) {
			yield(c)
		}, nil
	}
	resolved, err := c.resolveFree(dims)
	if err != nil {
		return nil, err
	}
	axes := make([][]Index[T], len(resolved))
	for i, dim := range resolved {
		defs := c.dims[dim].Indexes()
		axes[i] = make([]Index[T], len(defs))
		for j, def := range defs {
			axes[i][j] = def.Index()
		}
	}
	return func(yield func(*Cube[T, V]) bool) {
		for combination := range cartesian(axes) {
			bound := slices.Clone(c.bound)
			for i, dim := range resolved {
				bound = append(bound, binding[T]{dim: dim, index: combination[i]})
			}
			if !yield(c.derive(bound)) {
				return
			}
		}
	}, nil
}

// BreakdownSpan is Breakdown over the contiguous range of free dimensions
// from from to to, inclusive. An empty range (from beyond to) yields just the
// receiver.
func (c *Cube[T, V]) BreakdownSpan(from, to Position) (iter.Seq[*Cube[T, V]], error) {
	first, err := from.resolve(len(c.free))
	if err != nil {
		return nil, err
	}
	last, err := to.resolve(len(c.free))
	if err != nil {
		return nil, err
	}
	var span []Position
	for i := first; i <= last; i++ {
		span = append(span, At(i))
	}
	return c.Breakdown(span...)
}

// --- Introspection -----------------------------------------------------------

// FreeDimensionCount returns the number of dimensions not yet pinned.
func (c *Cube[T, V]) FreeDimensionCount() int {
	return len(c.free)
}

// BoundDimensionCount returns the number of slice steps applied to this view.
func (c *Cube[T, V]) BoundDimensionCount() int {
	return len(c.bound)
}

// FreeDimension returns the free dimension at the given position. Free
// dimensions renumber contiguously from 0 after every slice, keeping their
// original relative order.
func (c *Cube[T, V]) FreeDimension(at Position) (*Dimension[T], error) {
	i, err := at.resolve(len(c.free))
	if err != nil {
		return nil, err
	}
	return c.dims[c.free[i]], nil
}

// FreeDimensions returns the free dimensions in their original relative
// order.
func (c *Cube[T, V]) FreeDimensions() []*Dimension[T] {
	dims := make([]*Dimension[T], len(c.free))
	for i, dim := range c.free {
		dims[i] = c.dims[dim]
	}
	return dims
}

// BoundDimension returns the dimension pinned at the given slice step.
// Positions resolve against the binding history in application order, not by
// dimension number.
func (c *Cube[T, V]) BoundDimension(at Position) (*Dimension[T], error) {
	i, err := at.resolve(len(c.bound))
	if err != nil {
		return nil, err
	}
	return c.dims[c.bound[i].dim], nil
}

// BoundIndex returns the index value recorded at the given slice step.
func (c *Cube[T, V]) BoundIndex(at Position) (Index[T], error) {
	i, err := at.resolve(len(c.bound))
	if err != nil {
		return Index[T]{}, err
	}
	return c.bound[i].index, nil
}

// BoundIndexDef returns the index definition behind the value recorded at the
// given slice step. Slicing by a value the dimension does not declare is
// legal, so the definition may be nil.
func (c *Cube[T, V]) BoundIndexDef(at Position) (*IndexDef[T], error) {
	i, err := at.resolve(len(c.bound))
	if err != nil {
		return nil, err
	}
	def, _ := c.dims[c.bound[i].dim].Find(c.bound[i].index)
	return def, nil
}

// Bindings returns the full binding history in application order.
func (c *Cube[T, V]) Bindings() []Bound[T] {
	bound := make([]Bound[T], len(c.bound))
	for i, b := range c.bound {
		bound[i] = Bound[T]{Dimension: c.dims[b.dim], Index: b.index}
	}
	return bound
}

// AggregationKind reports which stock aggregation built this cube, or 0 for a
// custom one.
func (c *Cube[T, V]) AggregationKind() AggKind {
	return c.kind
}

// Seed returns the aggregation's seed, the value answered for empty cells.
func (c *Cube[T, V]) Seed() V {
	return c.seed
}

// Cells enumerates the visible contents of this view as a flat map: every
// stored cell whose bound slots match the current bindings, keyed by its
// remaining free slots in free-dimension order. Enumeration order is
// unspecified.
func (c *Cube[T, V]) Cells() iter.Seq2[[]Index[T], V] {
	return func(yield func([]Index[T], V) bool) {
		pinned := make([]uint32, len(c.bound))
		for i, b := range c.bound {
			pinned[i] = c.dims[b.dim].ordinal(b.index)
		}
		for key, value := range c.cells {
			matches := true
			for i, b := range c.bound {
				if key.ordinalAt(b.dim) != pinned[i] {
					matches = false
					break
				}
			}
			if !matches {
				continue
			}
			subkey := make([]Index[T], len(c.free))
			for i, dim := range c.free {
				subkey[i] = c.dims[dim].indexAt(key.ordinalAt(dim))
			}
			if !yield(subkey, value) {
				return
			}
		}
	}
}
