package records

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/cubes"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type sale struct {
	region string
	amount int
}

func TestFeedStreamsToConcurrentBuilds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cubes.records")
	defer teardown()

	sales := []sale{
		{region: "EMEA", amount: 4},
		{region: "APAC", amount: 6},
		{region: "EMEA", amount: 1},
	}
	byRegion, err := cubes.Dim("Region", func(s sale) string { return s.region },
		cubes.NewIndex("EMEA"), cubes.NewIndex("APAC"))
	if err != nil {
		t.Fatalf("dimension failed: %v", err)
	}
	agg := cubes.SumOf(func(s sale) int { return s.amount })

	feed := NewFeed[sale]()
	ctx := context.Background()
	var wg sync.WaitGroup
	results := make([]*cubes.Cube[string, int], 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cubes.BuildSeq(feed.Stream(ctx), agg, byRegion)
		}(i)
	}
	// let both consumers subscribe before publishing
	time.Sleep(50 * time.Millisecond)
	for _, s := range sales {
		if !feed.Pub(s) {
			t.Errorf("Pub failed on open feed")
		}
	}
	feed.Close()
	wg.Wait()

	for i, cube := range results {
		if errs[i] != nil {
			t.Fatalf("build %d failed: %v", i, errs[i])
		}
		got, err := cube.GetValue(cubes.Val("EMEA"))
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		if got != 5 {
			t.Fatalf("build %d: EMEA = %d, want 5", i, got)
		}
		total, err := cube.GetValue()
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		if total != 11 {
			t.Fatalf("build %d: total = %d, want 11", i, total)
		}
	}
}

func TestFeedPubAfterCloseReportsFalse(t *testing.T) {
	feed := NewFeed[sale]()
	feed.Close()
	if feed.Pub(sale{region: "EMEA"}) {
		t.Fatalf("Pub on a closed feed must report false")
	}
}

func TestFeedStreamStopsOnCancel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cubes.records")
	defer teardown()

	feed := NewFeed[sale]()
	defer feed.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		for range feed.Stream(ctx) {
		}
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stream did not stop on context cancellation")
	}
	// the feed must survive the departed consumer
	if !feed.Pub(sale{region: "EMEA"}) {
		t.Fatalf("Pub failed on open feed after a stream was cancelled")
	}
}
