/*
Package cubes builds and queries in-memory multidimensional aggregates.

# Cubes

A cube is built from a flat sequence of records in a single fold. Clients
declare how records are bucketed (dimensions, possibly hierarchical, possibly
multi-valued per record) and how values are combined (an aggregation with an
extract function, an associative and commutative combine function, and a
seed). The result supports point lookups, pinning of dimensions to concrete
values ("slicing") and enumeration of all indexes along one or more axes
("breakdown"), with subtotals and grand totals maintained automatically.

	byCustomer, _ := cubes.Dim("Customer", func(o Order) string { return o.Customer },
		cubes.NewIndex("A"), cubes.NewIndex("B"))
	byCustomer, _ = byCustomer.WithTrailingTotal("Total")
	byYear, _ := cubes.Dim("Year", func(o Order) string { return o.Year },
		cubes.NewIndex("2007"), cubes.NewIndex("2008"))
	cube, _ := cubes.Build(orders, cubes.SumOf(func(o Order) int { return o.Quantity }),
		byCustomer, byYear)
	total, _ := cube.GetValue()

Cubes are immutable after construction. Every slice operation returns a new
view sharing the cell map and dimension list by reference, so any number of
queries and slices may run concurrently without synchronization.

A lookup for a composite key that no source record contributed to is not an
error: it answers the aggregation's seed value, indistinguishable from a total
over zero records. Only malformed usage (out-of-range positions, more values
than free dimensions, duplicate dimensions in one operation) is reported as
an error.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package cubes

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cubes'
func tracer() tracing.Trace {
	return tracing.Select("cubes")
}
