// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/RaduBerinde/axisds"
	"github.com/RaduBerinde/axisds/regiontree"
)

// Timeline is a mutable index of coverage over the time axis. Epoch spans
// are accumulated into it and overlap queries run against everything added
// so far, regardless of how many epochs contributed to a region.
//
// Add and Excise are logarithmic; queries iterate the covered regions in
// order.
//
// Timeline is not safe for concurrent use.
type Timeline struct {
	// We use a region tree with time boundaries and the coverage
	// multiplicity as a property.
	rt regiontree.T[float64, coverage]
}

// coverage counts the epochs covering a region. 0 means the region is not
// covered.
type coverage int

// Init must be called before a Timeline can be used.
func (tl *Timeline) Init() {
	tl.rt = regiontree.Make(
		axisds.CompareFn[float64](cmp.Compare[float64]),
		func(a, b coverage) bool { return a == b },
	)
}

// Add records coverage of [start, stop).
func (tl *Timeline) Add(start, stop float64) {
	tl.rt.Update(start, stop, func(p coverage) coverage {
		return p + 1
	})
}

// AddCollection records coverage of every epoch in the collection.
func (tl *Timeline) AddCollection(c Collection) {
	for i := range c {
		tl.Add(c[i].Start, c[i].Stop)
	}
}

// Excise clears coverage of [start, stop). Any covered regions extending
// past the window are cut accordingly.
func (tl *Timeline) Excise(start, stop float64) {
	tl.rt.Update(start, stop, func(coverage) coverage {
		return 0
	})
}

// Overlaps returns true if [start, stop) intersects a covered region.
func (tl *Timeline) Overlaps(start, stop float64) bool {
	for b := range tl.rt.All() {
		if b.Start >= stop {
			break
		}
		if b.End > start {
			return true
		}
	}
	return false
}

// IsEmpty returns true if no covered regions remain.
func (tl *Timeline) IsEmpty() bool {
	return tl.rt.IsEmpty()
}

// Len returns the number of distinct covered regions. Two touching regions
// with different coverage multiplicities count separately.
func (tl *Timeline) Len() int {
	n := 0
	for range tl.rt.All() {
		n++
	}
	return n
}

// String prints the covered regions and their multiplicities.
func (tl *Timeline) String() string {
	var buf strings.Builder
	for b, cov := range tl.rt.All() {
		fmt.Fprintf(&buf, "[%g, %g) x%d\n", b.Start, b.End, int(cov))
	}
	if buf.Len() == 0 {
		return "<empty>"
	}
	return buf.String()
}
