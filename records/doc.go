/*
Package records feeds source records into cube builds.

The aggregation engine itself is source-agnostic: it folds any slice,
iterator or channel of records. This package supplies the common entry
points — tabular text files (CSV), HTML tables, and a broadcast feed that
lets several cubes be built concurrently from a single record stream.

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package records

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cubes.records'
func tracer() tracing.Trace {
	return tracing.Select("cubes.records")
}
