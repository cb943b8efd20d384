/*
Package report renders cube query results as fixed-width tables and trees.

The renderers are plain consumers of the cube query API: they pin dimensions
via breakdowns and read cell values, nothing more. Totals and subtotals are
whatever the dimensions declare; a report never re-derives a sum from its
visible rows.

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cubes.report'
func tracer() tracing.Trace {
	return tracing.Select("cubes.report")
}
