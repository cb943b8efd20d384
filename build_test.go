package cubes

import (
	"context"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type order struct {
	customer string
	year     string
	quantity int
	tags     []string
}

var testOrders = []order{
	{customer: "A", year: "2007", quantity: 10},
	{customer: "B", year: "2007", quantity: 12},
}

// orderDims declares customers {A,B} with a trailing total and years
// {2007,2008} with a trailing total.
func orderDims(t *testing.T) (byCustomer, byYear *DimensionDef[order, string]) {
	t.Helper()
	byCustomer, err := Dim("Customer", func(o order) string { return o.customer },
		NewIndex("A"), NewIndex("B"))
	if err != nil {
		t.Fatalf("customer dimension failed: %v", err)
	}
	byCustomer, err = byCustomer.WithTrailingTotal("Total")
	if err != nil {
		t.Fatalf("WithTrailingTotal failed: %v", err)
	}
	byYear, err = Dim("Year", func(o order) string { return o.year },
		NewIndex("2007"), NewIndex("2008"))
	if err != nil {
		t.Fatalf("year dimension failed: %v", err)
	}
	byYear, err = byYear.WithTrailingTotal("Total")
	if err != nil {
		t.Fatalf("WithTrailingTotal failed: %v", err)
	}
	return byCustomer, byYear
}

func orderCube(t *testing.T) *Cube[string, int] {
	t.Helper()
	byCustomer, byYear := orderDims(t)
	cube, err := Build(testOrders, SumOf(func(o order) int { return o.quantity }), byCustomer, byYear)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return cube
}

func mustValue[T comparable, V any](t *testing.T, cube *Cube[T, V], values ...Index[T]) V {
	t.Helper()
	got, err := cube.GetValue(values...)
	if err != nil {
		t.Fatalf("GetValue(%v) failed: %v", values, err)
	}
	return got
}

func TestBuildSumOfQuantities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cubes")
	defer teardown()

	cube := orderCube(t)
	if got := mustValue(t, cube, Val("A"), Val("2007")); got != 10 {
		t.Fatalf("GetValue(A, 2007) = %d, want 10", got)
	}
	if got := mustValue(t, cube, Total[string](), Val("2007")); got != 22 {
		t.Fatalf("GetValue(total, 2007) = %d, want 22", got)
	}
	if got := mustValue(t, cube, Val("A")); got != 10 {
		t.Fatalf("GetValue(A) = %d, want 10", got)
	}
	if got := mustValue(t, cube); got != 22 {
		t.Fatalf("GetValue() = %d, want 22", got)
	}
}

func TestBuildUnknownIndexAnswersSeed(t *testing.T) {
	cube := orderCube(t)
	if got := mustValue(t, cube, Val("Z"), Val("2007")); got != 0 {
		t.Fatalf("GetValue(Z, 2007) = %d, want seed 0", got)
	}
	if got := mustValue(t, cube, Val("B"), Val("2008")); got != 0 {
		t.Fatalf("GetValue(B, 2008) = %d, want seed 0", got)
	}
}

func TestBuildExplicitTotalsEqualGrandTotal(t *testing.T) {
	cube := orderCube(t)
	grand := mustValue(t, cube)
	explicit := mustValue(t, cube, Total[string](), Total[string]())
	if grand != explicit {
		t.Fatalf("GetValue() = %d but GetValue(total, total) = %d", grand, explicit)
	}
}

func TestBuildGrandTotalEqualsFoldOverAllRecords(t *testing.T) {
	cube := orderCube(t)
	want := 0
	for _, o := range testOrders {
		want += o.quantity
	}
	if got := mustValue(t, cube); got != want {
		t.Fatalf("grand total = %d, want fold result %d", got, want)
	}
}

func TestBuildMultiSelectionFansOutFullValue(t *testing.T) {
	tagged := []order{
		{customer: "A", quantity: 5, tags: []string{"x", "y"}},
		{customer: "B", quantity: 3, tags: []string{"x"}},
	}
	byTag, err := DimMulti("Tag", func(o order) []string { return o.tags },
		NewIndex("x"), NewIndex("y"))
	if err != nil {
		t.Fatalf("tag dimension failed: %v", err)
	}
	cube, err := Build(tagged, SumOf(func(o order) int { return o.quantity }), byTag)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube, Val("x")); got != 8 {
		t.Fatalf("GetValue(x) = %d, want 8", got)
	}
	if got := mustValue(t, cube, Val("y")); got != 5 {
		t.Fatalf("GetValue(y) = %d, want 5 (full value, not a split)", got)
	}
	if got := mustValue(t, cube); got != 8 {
		t.Fatalf("GetValue() = %d, want 8 (each record counted once in the total)", got)
	}
}

func TestBuildMultiSelectionDuplicateTagsCountOnce(t *testing.T) {
	tagged := []order{{customer: "A", quantity: 5, tags: []string{"x", "x"}}}
	byTag, err := DimMulti("Tag", func(o order) []string { return o.tags }, NewIndex("x"))
	if err != nil {
		t.Fatalf("tag dimension failed: %v", err)
	}
	cube, err := Build(tagged, SumOf(func(o order) int { return o.quantity }), byTag)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube, Val("x")); got != 5 {
		t.Fatalf("GetValue(x) = %d, want 5 (deduplicated selection)", got)
	}
}

func TestBuildEmptySelectionCountsIntoTotalOnly(t *testing.T) {
	tagged := []order{
		{customer: "A", quantity: 5},
		{customer: "B", quantity: 3, tags: []string{"x"}},
	}
	byTag, err := DimMulti("Tag", func(o order) []string { return o.tags }, NewIndex("x"))
	if err != nil {
		t.Fatalf("tag dimension failed: %v", err)
	}
	cube, err := Build(tagged, SumOf(func(o order) int { return o.quantity }), byTag)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube, Val("x")); got != 3 {
		t.Fatalf("GetValue(x) = %d, want 3", got)
	}
	if got := mustValue(t, cube); got != 8 {
		t.Fatalf("GetValue() = %d, want 8", got)
	}
}

func TestBuildUndeclaredSelectorValueCountsIntoTotalOnly(t *testing.T) {
	byCustomer, err := Dim("Customer", func(o order) string { return o.customer },
		NewIndex("A"))
	if err != nil {
		t.Fatalf("customer dimension failed: %v", err)
	}
	cube, err := Build(testOrders, SumOf(func(o order) int { return o.quantity }), byCustomer)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// customer B is not declared: contributes to the total only
	if got := mustValue(t, cube, Val("B")); got != 0 {
		t.Fatalf("GetValue(B) = %d, want seed 0", got)
	}
	if got := mustValue(t, cube); got != 22 {
		t.Fatalf("GetValue() = %d, want 22", got)
	}
}

func TestBuildHierarchyRollsUpIndependentOfDisplay(t *testing.T) {
	sales := []order{
		{customer: "Berlin", quantity: 4},
		{customer: "Munich", quantity: 6},
		{customer: "Tokyo", quantity: 1},
	}
	byRegion, err := Dim("Region", func(o order) string { return o.customer },
		NewIndex("EMEA", NewIndex("Berlin"), NewIndex("Munich")),
		NewIndex("APAC", NewIndex("Tokyo")),
	)
	if err != nil {
		t.Fatalf("region dimension failed: %v", err)
	}
	cube, err := Build(sales, SumOf(func(o order) int { return o.quantity }), byRegion)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube, Val("EMEA")); got != 10 {
		t.Fatalf("GetValue(EMEA) = %d, want 10", got)
	}
	if got := mustValue(t, cube, Val("APAC")); got != 1 {
		t.Fatalf("GetValue(APAC) = %d, want 1", got)
	}
	if got := mustValue(t, cube); got != 11 {
		t.Fatalf("GetValue() = %d, want 11", got)
	}
}

func TestBuildChannelMatchesSynchronousBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cubes")
	defer teardown()

	byCustomer, byYear := orderDims(t)
	ch := make(chan order)
	go func() {
		for _, o := range testOrders {
			ch <- o
		}
		close(ch)
	}()
	agg := SumOf(func(o order) int { return o.quantity })
	streamed, err := BuildChannel(context.Background(), ch, agg, byCustomer, byYear)
	if err != nil {
		t.Fatalf("BuildChannel failed: %v", err)
	}
	direct := orderCube(t)
	for key, want := range direct.Cells() {
		got := mustValue(t, streamed, key...)
		if got != want {
			t.Fatalf("streamed cube disagrees at %v: got=%d want=%d", key, got, want)
		}
	}
	if got, want := mustValue(t, streamed), mustValue(t, direct); got != want {
		t.Fatalf("grand totals differ: streamed=%d direct=%d", got, want)
	}
}

func TestBuildChannelHonorsCancellation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cubes")
	defer teardown()

	byCustomer, byYear := orderDims(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan order) // never fed, never closed
	agg := SumOf(func(o order) int { return o.quantity })
	_, err := BuildChannel(ctx, ch, agg, byCustomer, byYear)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildRejectsIncompleteDefinitions(t *testing.T) {
	byCustomer, _ := orderDims(t)
	if _, err := Build(testOrders, Agg[order, int](nil, nil, 0), byCustomer); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition for nil aggregation funcs, got %v", err)
	}
	agg := SumOf(func(o order) int { return o.quantity })
	if _, err := Build(testOrders, agg, (*DimensionDef[order, string])(nil)); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition for nil dimension, got %v", err)
	}
}

func TestBuildFromMapShapedRecords(t *testing.T) {
	recs := []map[string]string{
		{"customer": "A", "quantity": "10"},
		{"customer": "B", "quantity": "12"},
	}
	byCustomer, err := FieldDim[map[string]string]("Customer", "customer",
		NewIndex("A"), NewIndex("B"))
	if err != nil {
		t.Fatalf("FieldDim failed: %v", err)
	}
	cube, err := Build(recs, CountOf[map[string]string](), byCustomer)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube, Val("A")); got != 1 {
		t.Fatalf("count(A) = %d, want 1", got)
	}
	if got := mustValue(t, cube); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
}

func TestBuildWithZeroDimensions(t *testing.T) {
	agg := SumOf(func(o order) int { return o.quantity })
	cube, err := Build[order, string](testOrders, agg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := mustValue(t, cube); got != 22 {
		t.Fatalf("GetValue() = %d, want 22", got)
	}
	if cube.FreeDimensionCount() != 0 {
		t.Fatalf("expected no free dimensions")
	}
}
