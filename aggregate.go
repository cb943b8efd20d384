package cubes

import (
	"cmp"

	"hermannm.dev/enumnames"
)

// AggKind names the stock aggregations. Custom aggregations built with Agg
// report the zero kind.
type AggKind uint8

const (
	AggSum AggKind = iota + 1
	AggCount
	AggMin
	AggMax
	AggMean
)

var aggKindNames = enumnames.NewMap(map[AggKind]string{
	AggSum:   "SUM",
	AggCount: "COUNT",
	AggMin:   "MIN",
	AggMax:   "MAX",
	AggMean:  "MEAN",
})

func (kind AggKind) IsValid() bool {
	return aggKindNames.ContainsEnumValue(kind)
}

func (kind AggKind) String() string {
	return aggKindNames.GetNameOrFallback(kind, "AGGREGATION")
}

// Number constrains the value types the stock numeric aggregations accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// SumOf aggregates the sum of the extracted values, seeded with zero.
func SumOf[S any, V Number](extract func(S) V) *AggregationDef[S, V] {
	agg := Agg(extract, func(a, b V) V { return a + b }, 0)
	agg.kind = AggSum
	return agg
}

// CountOf counts contributing records, seeded with zero.
func CountOf[S any]() *AggregationDef[S, int] {
	agg := Agg(func(S) int { return 1 }, func(a, b int) int { return a + b }, 0)
	agg.kind = AggCount
	return agg
}

// MinOf aggregates the minimum of the extracted values. The ceiling is the
// seed, answered for empty cells; it must compare greater or equal to every
// extracted value.
func MinOf[S any, V cmp.Ordered](extract func(S) V, ceiling V) *AggregationDef[S, V] {
	agg := Agg(extract, func(a, b V) V { return min(a, b) }, ceiling)
	agg.kind = AggMin
	return agg
}

// MaxOf aggregates the maximum of the extracted values. The floor is the
// seed, answered for empty cells; it must compare less or equal to every
// extracted value.
func MaxOf[S any, V cmp.Ordered](extract func(S) V, floor V) *AggregationDef[S, V] {
	agg := Agg(extract, func(a, b V) V { return max(a, b) }, floor)
	agg.kind = AggMax
	return agg
}

// Mean is the running state of a mean aggregation. Sums and counts combine
// associatively and commutatively where a direct mean would not.
type Mean struct {
	Sum float64
	N   int64
}

// Value returns the mean, or 0 for an empty cell.
func (m Mean) Value() float64 {
	if m.N == 0 {
		return 0
	}
	return m.Sum / float64(m.N)
}

// MeanOf aggregates the arithmetic mean of the extracted values.
func MeanOf[S any](extract func(S) float64) *AggregationDef[S, Mean] {
	agg := Agg(
		func(record S) Mean { return Mean{Sum: extract(record), N: 1} },
		func(a, b Mean) Mean { return Mean{Sum: a.Sum + b.Sum, N: a.N + b.N} },
		Mean{},
	)
	agg.kind = AggMean
	return agg
}
