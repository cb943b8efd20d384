package cubes

import "iter"

// cartesian enumerates the N-way Cartesian product of the given ordered sets.
// The first set varies slowest, the last set fastest. An empty list of sets
// yields a single empty tuple; a list containing an empty set yields nothing.
//
// The yielded tuple is freshly allocated per combination and may be retained
// by the consumer.
func cartesian[E any](sets [][]E) iter.Seq[[]E] {
	return func(yield func([]E) bool) {
		tuple := make([]E, len(sets))
		var descend func(k int) bool
		descend = func(k int) bool {
			if k == len(sets) {
				out := make([]E, len(tuple))
				copy(out, tuple)
				return yield(out)
			}
			for _, e := range sets[k] {
				tuple[k] = e
				if !descend(k + 1) {
					return false
				}
			}
			return true
		}
		descend(0)
	}
}
