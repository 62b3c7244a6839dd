// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"math"
	"sort"
)

// Lookup returns the epoch covering time t under half-open bounds. When
// overlapping epochs cover t, the one with the greatest start wins; among
// epochs sharing that start, the latest in collection order wins. The
// collection must be sorted by start.
func (c Collection) Lookup(t float64) (Epoch, bool) {
	c.assertSorted()
	// Find the first epoch starting after t; every candidate precedes it.
	// Walking backward visits starts in non-increasing order, so the first
	// covering epoch found is the greatest-start winner.
	idx := sort.Search(len(c), func(i int) bool { return c[i].Start > t })
	for i := idx - 1; i >= 0; i-- {
		if c[i].Contains(t) {
			return c[i], true
		}
	}
	return Epoch{}, false
}

// Mask returns a boolean mask over ts marking the points covered by any
// epoch. Unlike Epoch.Contains, coverage here includes both boundaries, so a
// point sitting exactly on a stop is masked.
func (c Collection) Mask(ts []float64) []bool {
	res := make([]bool, len(ts))
	for i, t := range ts {
		for _, e := range c {
			if e.Start <= t && t <= e.Stop {
				res[i] = true
				break
			}
		}
	}
	return res
}

// Count returns a histogram of epoch midpoints between t0 and t1 with the
// given bin size. The final bin is extended to a full binSize when the range
// does not divide evenly. Midpoints outside the binned range are ignored.
// Returns nil if binSize is not positive or the range is empty.
func (c Collection) Count(t0, t1, binSize float64) []int {
	if binSize <= 0 || t1 <= t0 {
		return nil
	}
	nBins := int(math.Ceil((t1 - t0) / binSize))
	res := make([]int, nBins)
	for _, e := range c {
		mid := e.Start + e.Duration()/2
		if mid < t0 || mid >= t0+float64(nBins)*binSize {
			continue
		}
		res[int((mid-t0)/binSize)]++
	}
	return res
}
