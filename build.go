package cubes

import (
	"context"
	"iter"
	"slices"
)

// Build folds the given records into a cube, one pass, strictly in order.
//
// For every record, each dimension resolves the record to the set of indexes
// it contributes to (selected values, their ancestors, the dimension total);
// the record's extracted value is then combined into every cell of the
// Cartesian product of those per-dimension sets. A multi-valued selector thus
// fans a single record out to several cells of the same dimension, each
// receiving the full value, and a node's total always reflects every
// descendant's contribution regardless of what a report displays.
func Build[S any, T comparable, V any](records []S, agg *AggregationDef[S, V], dims ...*DimensionDef[S, T]) (*Cube[T, V], error) {
	return BuildSeq(slices.Values(records), agg, dims...)
}

// BuildSeq is Build over a pull-based record source. Records are consumed
// strictly sequentially; producing the next record may suspend the caller
// (iter.Seq sources may be backed by coroutines, files, or network reads).
// Given the same records in the same order, the built cube is identical to
// the one Build produces.
func BuildSeq[S any, T comparable, V any](records iter.Seq[S], agg *AggregationDef[S, V], dims ...*DimensionDef[S, T]) (*Cube[T, V], error) {
	if err := checkBuild(agg, dims); err != nil {
		return nil, err
	}
	cells := make(map[cellKey]V)
	count := 0
	for record := range records {
		foldRecord(cells, record, agg, dims)
		count++
	}
	tracer().Debugf("cube build: %d records folded into %d cells", count, len(cells))
	return newCube(cells, dimensions(dims), agg), nil
}

// BuildChannel is Build over a push-based record source. It drains the
// channel until the producer closes it. The context lets a feeding pipeline
// abandon the build; on cancellation the context error is returned and the
// partial fold is discarded.
func BuildChannel[S any, T comparable, V any](ctx context.Context, records <-chan S, agg *AggregationDef[S, V], dims ...*DimensionDef[S, T]) (*Cube[T, V], error) {
	if err := checkBuild(agg, dims); err != nil {
		return nil, err
	}
	cells := make(map[cellKey]V)
	count := 0
	for {
		select {
		case record, ok := <-records:
			if !ok {
				tracer().Debugf("cube build: %d records folded into %d cells", count, len(cells))
				return newCube(cells, dimensions(dims), agg), nil
			}
			foldRecord(cells, record, agg, dims)
			count++
		case <-ctx.Done():
			tracer().Debugf("cube build: abandoned after %d records", count)
			return nil, ctx.Err()
		}
	}
}

func checkBuild[S any, T comparable, V any](agg *AggregationDef[S, V], dims []*DimensionDef[S, T]) error {
	if err := agg.validate(); err != nil {
		return err
	}
	for _, dim := range dims {
		if dim == nil || dim.Dimension == nil || dim.selector == nil {
			return ErrInvalidDefinition
		}
	}
	return nil
}

// foldRecord applies one record's contribution to every affected cell.
func foldRecord[S any, T comparable, V any](cells map[cellKey]V, record S, agg *AggregationDef[S, V], dims []*DimensionDef[S, T]) {
	affected := make([][]uint32, len(dims))
	for i, dim := range dims {
		affected[i] = dim.affected(record)
	}
	value := agg.Extract(record)
	for ordinals := range cartesian(affected) {
		key := encodeKey(ordinals)
		if existing, ok := cells[key]; ok {
			cells[key] = agg.Combine(existing, value)
		} else {
			cells[key] = value
		}
	}
}

func dimensions[S any, T comparable](dims []*DimensionDef[S, T]) []*Dimension[T] {
	out := make([]*Dimension[T], len(dims))
	for i, dim := range dims {
		out[i] = dim.Dimension
	}
	return out
}
