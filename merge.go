// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"github.com/cockroachdb/errors"
	"github.com/ephyslab/epochs/internal/invariants"
)

// neighborGap is the maximum separation, in seconds, at which MergeNeighbors
// considers two same-label epochs contiguous.
const neighborGap = 1e-6

// Combine returns a copy of the collection with single-epoch boundary
// containment resolved and exact duplicates removed. The receiver is left
// untouched. See CombineInPlace for the algorithm.
func (c Collection) Combine() Collection {
	res := c.Clone()
	res.CombineInPlace()
	return res
}

// CombineInPlace collapses the collection so that no epoch boundary is
// unambiguously contained within a single other epoch, then drops exact
// duplicates and sorts by start.
//
// For every epoch i, its start is compared against every other epoch j's
// [Start, Stop) range. If exactly one j satisfies j.Start < i.Start < j.Stop,
// i's start is replaced by j's start; if more than one does, the boundary is
// left untouched. Stops are treated symmetrically. All comparisons use the
// original boundaries, so the outcome does not depend on iteration order.
//
// The threshold-of-one replacement means the result is not a full interval
// union: a boundary overlapped by two or more epochs survives unchanged, and
// the output may still contain overlapping epochs. Use MergeWithin for
// wholesale coalescing.
func (c *Collection) CombineInPlace() {
	eps := *c
	n := len(eps)
	if n < 2 {
		return
	}

	// Phase one: record replacements against the pre-mutation boundaries.
	newStarts := make([]float64, n)
	newStops := make([]float64, n)
	for i := range eps {
		newStarts[i] = eps[i].Start
		newStops[i] = eps[i].Stop
	}
	for i := range eps {
		var startCount, stopCount int
		var startRepl, stopRepl float64
		for j := range eps {
			if j == i {
				continue
			}
			if eps[j].Start < eps[i].Start && eps[i].Start < eps[j].Stop {
				startCount++
				startRepl = eps[j].Start
			}
			if eps[j].Start < eps[i].Stop && eps[i].Stop < eps[j].Stop {
				stopCount++
				stopRepl = eps[j].Stop
			}
		}
		if startCount == 1 {
			newStarts[i] = startRepl
		}
		if stopCount == 1 {
			newStops[i] = stopRepl
		}
	}

	// Phase two: apply the replacements.
	for i := range eps {
		eps[i].Start = newStarts[i]
		eps[i].Stop = newStops[i]
	}

	// Drop exact duplicates (all fields identical), keeping first
	// occurrences, and sort by start.
	seen := make(map[Epoch]struct{}, n)
	out := eps[:0]
	for _, e := range eps {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	out.Sort()
	*c = out
}

// MergeWithin coalesces epochs separated by a gap of less than dt seconds
// into single spans, cascading forward: a merged span keeps absorbing
// following epochs until one starts at least dt after the span's stop.
// Overlapping epochs are always absorbed. The result is unlabeled; label
// identity is not preserved across wholesale merging. The collection must be
// sorted by start.
func (c Collection) MergeWithin(dt float64) Collection {
	c.assertSorted()
	if len(c) == 0 {
		return Collection{}
	}
	res := Collection{{Start: c[0].Start, Stop: c[0].Stop}}
	for _, e := range c[1:] {
		last := &res[len(res)-1]
		if e.Start-last.Stop < dt {
			last.Stop = max(last.Stop, e.Stop)
		} else {
			res = append(res, Epoch{Start: e.Start, Stop: e.Stop})
		}
	}
	if invariants.Enabled && invariants.Sometimes(50) {
		for i := 1; i < len(res); i++ {
			if res[i].Start-res[i-1].Stop < dt {
				panic(errors.AssertionFailedf(
					"epochs: MergeWithin left a gap of %g < %g", res[i].Start-res[i-1].Stop, dt))
			}
		}
	}
	return res
}

// MergeNeighbors coalesces consecutive epochs that share a label and are
// separated by less than a microsecond, preserving labels. Epochs with
// different labels are never merged, regardless of separation. The collection
// must be sorted by start.
func (c Collection) MergeNeighbors() Collection {
	c.assertSorted()
	if len(c) == 0 {
		return Collection{}
	}
	res := Collection{c[0]}
	for _, e := range c[1:] {
		last := &res[len(res)-1]
		if e.Label == last.Label && e.Start-last.Stop < neighborGap {
			last.Stop = max(last.Stop, e.Stop)
		} else {
			res = append(res, e)
		}
	}
	return res
}
