package cubes

// DimensionDef couples a dimension with a selector extracting that
// dimension's index values from a source record. Selectors may yield zero,
// one or several values per record; every yielded value the dimension does
// not declare, and the empty yield, normalize to the dimension total.
type DimensionDef[S any, T comparable] struct {
	*Dimension[T]
	selector func(S) []Index[T]
}

// Dim declares a dimension with a single-valued selector.
func Dim[S any, T comparable](title string, selector func(S) T, roots ...*IndexDef[T]) (*DimensionDef[S, T], error) {
	if selector == nil {
		return nil, ErrInvalidDefinition
	}
	dim, err := NewDimension(title, roots...)
	if err != nil {
		return nil, err
	}
	return &DimensionDef[S, T]{
		Dimension: dim,
		selector: func(record S) []Index[T] {
			return []Index[T]{Val(selector(record))}
		},
	}, nil
}

// DimOpt declares a dimension with an optional single-valued selector.
// Records for which the selector reports ok == false count into the
// dimension total only.
func DimOpt[S any, T comparable](title string, selector func(S) (T, bool), roots ...*IndexDef[T]) (*DimensionDef[S, T], error) {
	if selector == nil {
		return nil, ErrInvalidDefinition
	}
	dim, err := NewDimension(title, roots...)
	if err != nil {
		return nil, err
	}
	return &DimensionDef[S, T]{
		Dimension: dim,
		selector: func(record S) []Index[T] {
			if value, ok := selector(record); ok {
				return []Index[T]{Val(value)}
			}
			return nil
		},
	}, nil
}

// DimMulti declares a dimension with a multi-valued selector: one record may
// count into several indexes of the same dimension (e.g. tags). Each record
// contributes its full value to every selected index independently, and once
// to the dimension total.
func DimMulti[S any, T comparable](title string, selector func(S) []T, roots ...*IndexDef[T]) (*DimensionDef[S, T], error) {
	if selector == nil {
		return nil, ErrInvalidDefinition
	}
	dim, err := NewDimension(title, roots...)
	if err != nil {
		return nil, err
	}
	return &DimensionDef[S, T]{
		Dimension: dim,
		selector: func(record S) []Index[T] {
			values := selector(record)
			indexes := make([]Index[T], len(values))
			for i, value := range values {
				indexes[i] = Val(value)
			}
			return indexes
		},
	}, nil
}

// FieldDim declares a dimension over map-shaped records (e.g. records.Record)
// selecting one named field. Records without the field select the empty
// string, like any map access.
func FieldDim[S ~map[string]string](title, field string, roots ...*IndexDef[string]) (*DimensionDef[S, string], error) {
	return Dim(title, func(record S) string { return record[field] }, roots...)
}

// DimTotalOnly declares a placeholder dimension with just a total root.
// Every record counts into the total; useful to keep cube shapes uniform.
func DimTotalOnly[S any, T comparable](title string) (*DimensionDef[S, T], error) {
	dim, err := NewDimension(title, NewTotalIndex[T]().Titled(title))
	if err != nil {
		return nil, err
	}
	return &DimensionDef[S, T]{
		Dimension: dim,
		selector:  func(S) []Index[T] { return nil },
	}, nil
}

// WithLeadingTotal synthesizes a total root above the existing roots,
// enumerated before them. It returns a new dimension definition; the receiver
// stays usable. Fails with ErrTotalExists if a total root is already
// declared.
func (dd *DimensionDef[S, T]) WithLeadingTotal(title string) (*DimensionDef[S, T], error) {
	return dd.withTotal(title, false)
}

// WithTrailingTotal synthesizes a total root above the existing roots,
// enumerated after them (a trailing grand-total row). It returns a new
// dimension definition; the receiver stays usable. Fails with ErrTotalExists
// if a total root is already declared.
func (dd *DimensionDef[S, T]) WithTrailingTotal(title string) (*DimensionDef[S, T], error) {
	return dd.withTotal(title, true)
}

func (dd *DimensionDef[S, T]) withTotal(title string, trailing bool) (*DimensionDef[S, T], error) {
	if dd.hasTotalRoot() {
		return nil, ErrTotalExists
	}
	root := NewTotalIndex(dd.roots...).Titled(title)
	if trailing {
		root = root.ChildrenFirst()
	}
	dim, err := NewDimension(dd.title, root)
	if err != nil {
		return nil, err
	}
	return &DimensionDef[S, T]{Dimension: dim, selector: dd.selector}, nil
}

// affected resolves a record to the ordinals of all indexes it contributes to
// in this dimension: the union of the rollup chains of every selected value,
// deduplicated, or just the total if nothing was selected.
func (dd *DimensionDef[S, T]) affected(record S) []uint32 {
	selected := dd.selector(record)
	if len(selected) == 0 {
		return []uint32{totalOrdinal}
	}
	seen := make(map[uint32]bool, len(selected)*2)
	var ordinals []uint32
	for _, ix := range selected {
		for _, ord := range dd.rollup(ix) {
			if !seen[ord] {
				seen[ord] = true
				ordinals = append(ordinals, ord)
			}
		}
	}
	return ordinals
}

// AggregationDef declares how record values are combined into cells: Extract
// pulls the value out of a record, Combine folds two values, and Seed is the
// answer for cells no record contributed to.
//
// Combine must be associative and commutative: one record's contribution is
// folded into many cells (rollup, multi-selection), and cell evaluation order
// is unspecified. This is a caller obligation and is never checked; a
// non-commutative combiner makes results fold-order-dependent.
type AggregationDef[S, V any] struct {
	Extract func(S) V
	Combine func(V, V) V
	Seed    V

	kind AggKind // set by the stock constructors, 0 for custom aggregations
}

// Agg declares a custom aggregation from an extractor, a combiner and a seed.
// The seed must be an identity for the combiner.
func Agg[S, V any](extract func(S) V, combine func(V, V) V, seed V) *AggregationDef[S, V] {
	return &AggregationDef[S, V]{Extract: extract, Combine: combine, Seed: seed}
}

// Kind reports which stock aggregation produced this definition, or 0 for a
// custom one.
func (agg *AggregationDef[S, V]) Kind() AggKind {
	return agg.kind
}

func (agg *AggregationDef[S, V]) validate() error {
	if agg == nil || agg.Extract == nil || agg.Combine == nil {
		return ErrInvalidDefinition
	}
	return nil
}
