package records

import (
	"context"
	"iter"

	"github.com/guiguan/caster"
)

// Feed is a broadcast record source: one producer publishes records, any
// number of consumers stream them concurrently, each receiving every record
// published after it subscribed. Several cubes with different dimensions can
// thus be built from a single pass over the underlying data, e.g.
//
//	feed := records.NewFeed[Order]()
//	go func() {
//		for _, o := range orders {
//			feed.Pub(o)
//		}
//		feed.Close()
//	}()
//	cube, err := cubes.BuildSeq(feed.Stream(ctx), agg, byCustomer, byYear)
type Feed[S any] struct {
	cast *caster.Caster
}

// NewFeed creates an open feed. The producer must call Close when done,
// otherwise consumers block forever.
func NewFeed[S any]() *Feed[S] {
	return &Feed[S]{cast: caster.New(nil)}
}

// Pub broadcasts one record to all current subscribers. It reports false once
// the feed is closed.
func (f *Feed[S]) Pub(record S) bool {
	return f.cast.Pub(record)
}

// Close ends the feed; all streams terminate after draining.
func (f *Feed[S]) Close() {
	f.cast.Close()
}

// Stream subscribes to the feed and yields records in publication order until
// the feed closes or the context is cancelled. Each call to Stream is an
// independent subscription; pulling the next record suspends the consumer
// until one is published.
func (f *Feed[S]) Stream(ctx context.Context) iter.Seq[S] {
	return func(yield func(S) bool) {
		// Subscribe without a context: were the caster watching ctx, it would
		// close the subscriber channel on cancellation itself, and the Unsub
		// below would close it a second time. Unsub is the single closer;
		// cancellation is handled in the select.
		ch, ok := f.cast.Sub(context.Background(), 64)
		if !ok {
			tracer().Debugf("record feed already closed, stream is empty")
			return
		}
		defer f.cast.Unsub(ch)
		for {
			select {
			case m, open := <-ch:
				if !open {
					return
				}
				record, valid := m.(S)
				if !valid {
					tracer().Errorf("record feed delivered unexpected type %T", m)
					continue
				}
				if !yield(record) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}
