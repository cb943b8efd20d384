package cubes

import (
	"fmt"

	"hermannm.dev/wrap"
)

// Dimension is one axis of analysis: an ordered, validated forest of index
// definitions. Construction flattens the hierarchy, rejects malformed
// declarations and derives the rollup chain of every concrete value, i.e. the
// list of indexes a contribution to that value must be added to (the value
// itself, its strict ancestors, and the dimension total).
//
// Dimensions are immutable after construction and may be shared by any number
// of cubes and cube views.
type Dimension[T comparable] struct {
	title  string
	roots  []*IndexDef[T]
	flat   []*IndexDef[T]               // declared enumeration order
	defs   *indexTable[T, *IndexDef[T]] // value -> definition
	chains map[T][]uint32               // concrete value -> rollup chain as ordinals
	ords   map[T]uint32                 // concrete value -> 1-based ordinal
	vals   []T                          // ordinal-1 -> concrete value
}

// NewDimension validates the given index definitions and derives the
// dimension's lookup and rollup tables.
//
// Construction fails for duplicate index values anywhere in the forest, for a
// total definition below a child, and for a total root declared next to peer
// roots.
func NewDimension[T comparable](title string, roots ...*IndexDef[T]) (*Dimension[T], error) {
	dim := &Dimension[T]{
		title:  title,
		roots:  roots,
		defs:   newIndexTable[T, *IndexDef[T]](),
		chains: make(map[T][]uint32),
		ords:   make(map[T]uint32),
	}
	if err := dim.check(); err != nil {
		return nil, wrap.Errorf(err, "invalid dimension %q", title)
	}
	if err := dim.flatten(); err != nil {
		return nil, wrap.Errorf(err, "invalid dimension %q", title)
	}
	dim.deriveChains()
	return dim, nil
}

// check enforces the structural total rules before flattening.
func (dim *Dimension[T]) check() error {
	for _, root := range dim.roots {
		if root == nil {
			return fmt.Errorf("%w: nil index definition", ErrInvalidDefinition)
		}
		if root.index.IsTotal() && len(dim.roots) > 1 {
			return ErrMixedTotalRoot
		}
	}
	var nested func(def *IndexDef[T]) error
	nested = func(def *IndexDef[T]) error {
		for _, child := range def.children {
			if child == nil {
				return fmt.Errorf("%w: nil index definition", ErrInvalidDefinition)
			}
			if child.index.IsTotal() {
				return ErrNestedTotal
			}
			if err := nested(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range dim.roots {
		if err := nested(root); err != nil {
			return err
		}
	}
	return nil
}

// flatten records the declared enumeration order and assigns ordinals,
// catching duplicates across subtrees.
func (dim *Dimension[T]) flatten() error {
	var err error
	for _, root := range dim.roots {
		root.walk(func(def *IndexDef[T]) bool {
			if e := dim.defs.insert(def.index, def); e != nil {
				err = e
				return false
			}
			dim.flat = append(dim.flat, def)
			if value, ok := def.index.ConcreteValue(); ok {
				dim.vals = append(dim.vals, value)
				dim.ords[value] = uint32(len(dim.vals))
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// deriveChains computes, for every concrete value, the ordinals of the value
// itself, its strict ancestors bottom-up, and finally the dimension total.
// A total root already terminates the ancestor walk, so no extra total is
// appended behind it.
func (dim *Dimension[T]) deriveChains() {
	var descend func(def *IndexDef[T], ancestors []uint32)
	descend = func(def *IndexDef[T], ancestors []uint32) {
		chain := append([]uint32{dim.ordinal(def.index)}, ancestors...)
		if value, ok := def.index.ConcreteValue(); ok {
			if chain[len(chain)-1] != totalOrdinal {
				chain = append(chain, totalOrdinal)
			}
			dim.chains[value] = chain
		}
		for _, child := range def.children {
			descend(child, chain[:len(chain):len(chain)])
		}
	}
	for _, root := range dim.roots {
		descend(root, nil)
	}
}

// Title returns the dimension's display title.
func (dim *Dimension[T]) Title() string {
	return dim.title
}

// Roots returns the declared root index definitions.
func (dim *Dimension[T]) Roots() []*IndexDef[T] {
	return dim.roots
}

// Indexes returns all index definitions flattened in declared enumeration
// order, respecting each node's parent/children ordering. This is the order
// breakdowns enumerate.
func (dim *Dimension[T]) Indexes() []*IndexDef[T] {
	return dim.flat
}

// Size returns the number of declared indexes, total included if declared.
func (dim *Dimension[T]) Size() int {
	return len(dim.flat)
}

// Def returns the definition declared for an index value. Asking for an
// undeclared value is a usage error (ErrNoSuchIndex); use Find for the
// tolerant form.
func (dim *Dimension[T]) Def(ix Index[T]) (*IndexDef[T], error) {
	return dim.defs.get(ix)
}

// Find returns the definition declared for an index value, or false.
func (dim *Dimension[T]) Find(ix Index[T]) (*IndexDef[T], bool) {
	return dim.defs.find(ix)
}

// ordinal maps an index value to its composite-key ordinal. Values absent
// from the dimension map to the reserved missing ordinal, which no stored
// cell carries.
func (dim *Dimension[T]) ordinal(ix Index[T]) uint32 {
	if ix.IsTotal() {
		return totalOrdinal
	}
	if ord, ok := dim.ords[ix.value]; ok {
		return ord
	}
	return missingOrdinal
}

// indexAt is the inverse of ordinal for stored ordinals.
func (dim *Dimension[T]) indexAt(ord uint32) Index[T] {
	if ord == totalOrdinal {
		return Total[T]()
	}
	return Val(dim.vals[ord-1])
}

// rollup returns the ordinals of all indexes a contribution to ix must be
// added to. Values the dimension does not declare contribute to the total
// only, never to a concrete cell.
func (dim *Dimension[T]) rollup(ix Index[T]) []uint32 {
	if value, ok := ix.ConcreteValue(); ok {
		if chain, declared := dim.chains[value]; declared {
			return chain
		}
	}
	return []uint32{totalOrdinal}
}

// hasTotalRoot reports whether the dimension declares an explicit total root.
func (dim *Dimension[T]) hasTotalRoot() bool {
	return len(dim.roots) == 1 && dim.roots[0].index.IsTotal()
}
