// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import "github.com/cockroachdb/errors"

// FromLabelRuns builds a collection from a sampled label series: each
// maximal run of equal, non-empty labels becomes one epoch spanning the
// run's samples. Empty labels mark unannotated samples and produce no
// epochs.
//
// Sample i sits at time i*dt, or t[i] when an explicit time vector is given
// (t must then match labels in length). A run's stop boundary is the time of
// the first sample past the run; the final run is closed dt after its last
// sample. The result is sorted by start.
func FromLabelRuns(labels []string, dt float64, t []float64) (Collection, error) {
	if dt <= 0 {
		return nil, errors.Newf("epochs: non-positive sample interval %g", dt)
	}
	if t != nil && len(t) != len(labels) {
		return nil, errors.Newf(
			"epochs: mismatched array lengths: %d labels, %d times", len(labels), len(t))
	}
	timeAt := func(i int) float64 {
		if t != nil {
			return t[i]
		}
		return float64(i) * dt
	}
	c := Collection{}
	for i := 0; i < len(labels); {
		j := i + 1
		for j < len(labels) && labels[j] == labels[i] {
			j++
		}
		if labels[i] != "" {
			stop := timeAt(j-1) + dt
			if j < len(labels) {
				stop = timeAt(j)
			}
			c = append(c, Epoch{Start: timeAt(i), Stop: stop, Label: labels[i]})
		}
		i = j
	}
	c.Sort()
	return c, nil
}

// FromBools builds a collection from a sampled boolean series: each maximal
// run of true samples becomes one epoch labeled "high". Samples are one
// second apart unless an explicit time vector is given.
func FromBools(vals []bool, t []float64) (Collection, error) {
	labels := make([]string, len(vals))
	for i, v := range vals {
		if v {
			labels[i] = "high"
		}
	}
	return FromLabelRuns(labels, 1, t)
}

// Flatten returns the boundaries as one alternating sequence
// [start0, stop0, start1, stop1, ...]. The sequence is monotonic only if the
// collection is sorted and non-overlapping.
func (c Collection) Flatten() []float64 {
	res := make([]float64, 0, 2*len(c))
	for _, e := range c {
		res = append(res, e.Start, e.Stop)
	}
	return res
}

// AsPairs returns the boundaries as [start, stop] pairs, in collection
// order.
func (c Collection) AsPairs() [][2]float64 {
	res := make([][2]float64, len(c))
	for i, e := range c {
		res[i] = [2]float64{e.Start, e.Stop}
	}
	return res
}
