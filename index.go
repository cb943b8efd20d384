package cubes

import "fmt"

// Index addresses one bucket along a dimension. It either carries a concrete
// value of the dimension's value type, or it is the dimension's total, the
// reserved index standing for "all values of this dimension".
//
// Wrapping the total explicitly keeps it distinct from legitimate zero values
// of T: an Index holding the empty string is not the total of a string-valued
// dimension.
type Index[T comparable] struct {
	value T
	total bool
}

// Val wraps a concrete dimension value.
func Val[T comparable](value T) Index[T] {
	return Index[T]{value: value}
}

// Total returns the reserved total index of a dimension over T.
func Total[T comparable]() Index[T] {
	return Index[T]{total: true}
}

// IsTotal reports whether ix is the reserved total index.
func (ix Index[T]) IsTotal() bool {
	return ix.total
}

// ConcreteValue returns the wrapped value. ok is false for the total index,
// in which case the value is the zero value of T.
func (ix Index[T]) ConcreteValue() (value T, ok bool) {
	return ix.value, !ix.total
}

func (ix Index[T]) String() string {
	if ix.total {
		return "Σ"
	}
	return fmt.Sprintf("%v", ix.value)
}

// IndexDef is a node in a dimension's value hierarchy: an index value, an
// optional display title, and ordered child indexes. Contributions to a child
// roll up into every ancestor automatically.
//
// Definitions are staged with NewIndex/NewTotalIndex and the chainable Titled
// and ChildrenFirst setters, then handed to a dimension. From that point on a
/// definition is settled: it is owned by exactly one dimension and must not be
// modified or shared with another dimension.
type IndexDef[T comparable] struct {
	index         Index[T]
	title         string
	children      []*IndexDef[T]
	childrenFirst bool
}

// NewIndex creates an index definition for a concrete value, with optional
// child definitions. Enumeration lists the node before its children; see
// ChildrenFirst for the inverted order.
func NewIndex[T comparable](value T, children ...*IndexDef[T]) *IndexDef[T] {
	return &IndexDef[T]{index: Val(value), children: children}
}

// NewTotalIndex creates an index definition for the dimension total, with
// optional child definitions. A total definition may only be used as the sole
// root of a dimension.
func NewTotalIndex[T comparable](children ...*IndexDef[T]) *IndexDef[T] {
	return &IndexDef[T]{index: Total[T](), children: children}
}

// Titled sets a display title and returns the definition for chaining.
// To be called during staging only, before the definition joins a dimension.
func (def *IndexDef[T]) Titled(title string) *IndexDef[T] {
	def.title = title
	return def
}

// ChildrenFirst makes enumeration list the children before the node itself,
// e.g. for placing a subtotal behind its detail rows. To be called during
// staging only, before the definition joins a dimension.
func (def *IndexDef[T]) ChildrenFirst() *IndexDef[T] {
	def.childrenFirst = true
	return def
}

// Index returns the index value this definition declares.
func (def *IndexDef[T]) Index() Index[T] {
	return def.index
}

// Title returns the display title, falling back to the index value's string
// form if no title was set.
func (def *IndexDef[T]) Title() string {
	if def.title != "" {
		return def.title
	}
	return def.index.String()
}

// Children returns the ordered child definitions.
func (def *IndexDef[T]) Children() []*IndexDef[T] {
	return def.children
}

// IsChildrenFirst reports whether enumeration lists the children before the
// node itself.
func (def *IndexDef[T]) IsChildrenFirst() bool {
	return def.childrenFirst
}

// walk visits the subtree in declared enumeration order, respecting each
// node's parent/children ordering. It stops early if visit returns false.
func (def *IndexDef[T]) walk(visit func(*IndexDef[T]) bool) bool {
	if def == nil {
		return true
	}
	if !def.childrenFirst {
		if !visit(def) {
			return false
		}
	}
	for _, child := range def.children {
		if !child.walk(visit) {
			return false
		}
	}
	if def.childrenFirst {
		if !visit(def) {
			return false
		}
	}
	return true
}
