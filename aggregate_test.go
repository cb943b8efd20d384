package cubes

import (
	"math"
	"testing"
)

func TestStockAggregationKindNames(t *testing.T) {
	cases := map[AggKind]string{
		AggSum:   "SUM",
		AggCount: "COUNT",
		AggMin:   "MIN",
		AggMax:   "MAX",
		AggMean:  "MEAN",
	}
	for kind, want := range cases {
		if !kind.IsValid() {
			t.Fatalf("%s should be valid", want)
		}
		if got := kind.String(); got != want {
			t.Fatalf("kind name = %q, want %q", got, want)
		}
	}
	if AggKind(0).IsValid() {
		t.Fatalf("the zero kind marks custom aggregations and is not a stock kind")
	}
}

func TestCountAggregation(t *testing.T) {
	byCustomer, byYear := orderDims(t)
	cube, err := Build(testOrders, CountOf[order](), byCustomer, byYear)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
	if got := mustValue(t, cube, Val("A")); got != 1 {
		t.Fatalf("count(A) = %d, want 1", got)
	}
	if cube.AggregationKind() != AggCount {
		t.Fatalf("kind = %s, want COUNT", cube.AggregationKind())
	}
}

func TestMinMaxAggregation(t *testing.T) {
	byCustomer, _ := orderDims(t)
	lowest, err := Build(testOrders,
		MinOf(func(o order) int { return o.quantity }, math.MaxInt), byCustomer)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, lowest); got != 10 {
		t.Fatalf("min = %d, want 10", got)
	}
	// empty cell answers the ceiling seed
	if got := mustValue(t, lowest, Val("Z")); got != math.MaxInt {
		t.Fatalf("min(Z) = %d, want the ceiling", got)
	}
	highest, err := Build(testOrders,
		MaxOf(func(o order) int { return o.quantity }, 0), byCustomer)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, highest); got != 12 {
		t.Fatalf("max = %d, want 12", got)
	}
}

func TestMeanAggregation(t *testing.T) {
	byCustomer, _ := orderDims(t)
	cube, err := Build(testOrders,
		MeanOf(func(o order) float64 { return float64(o.quantity) }), byCustomer)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mean := mustValue(t, cube)
	if mean.Value() != 11 {
		t.Fatalf("mean = %v, want 11", mean.Value())
	}
	if mean.N != 2 || mean.Sum != 22 {
		t.Fatalf("unexpected mean state: %+v", mean)
	}
	empty := mustValue(t, cube, Val("Z"))
	if empty.Value() != 0 || empty.N != 0 {
		t.Fatalf("empty cell mean = %+v, want zero state", empty)
	}
}

func TestCustomAggregationReportsZeroKind(t *testing.T) {
	byCustomer, _ := orderDims(t)
	concat := Agg(
		func(o order) string { return o.customer },
		func(a, b string) string {
			// commutative on this input set: values are distinct letters
			if a < b {
				return a + b
			}
			return b + a
		},
		"",
	)
	cube, err := Build(testOrders, concat, byCustomer)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cube.AggregationKind() != 0 {
		t.Fatalf("custom aggregation must report the zero kind")
	}
	if got := mustValue(t, cube); got != "AB" {
		t.Fatalf("combined = %q, want AB", got)
	}
}
