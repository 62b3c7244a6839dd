// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package epochs provides labeled time-interval collections for
// electrophysiology recordings and the operations to combine, slice, and
// query them.
package epochs // import "github.com/ephyslab/epochs"

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/ephyslab/epochs/internal/invariants"
)

// Epoch is a window of time on a recording timeline. The start boundary is
// inclusive and the stop boundary is exclusive.
type Epoch struct {
	// Start is the inclusive start boundary, in seconds.
	Start float64
	// Stop is the exclusive stop boundary, in seconds.
	Stop float64
	// Label is an optional free-form annotation. Epochs that differ only in
	// their labels are distinct: they do not compare equal and are never
	// deduplicated against each other.
	Label string
}

// Duration returns the length of the epoch, in seconds.
func (e Epoch) Duration() float64 {
	return e.Stop - e.Start
}

// Valid returns true if the epoch has positive duration. Operations do not
// require validity; an inverted epoch simply never contains a time point.
func (e Epoch) Valid() bool {
	return e.Stop > e.Start
}

// Contains returns true if t falls within the epoch's half-open bounds.
func (e Epoch) Contains(t float64) bool {
	return e.Start <= t && t < e.Stop
}

// Overlaps returns true if the two epochs intersect in a window of positive
// duration.
func (e Epoch) Overlaps(other Epoch) bool {
	return e.Start < other.Stop && other.Start < e.Stop
}

// Collection is an ordered sequence of epochs. Collections built through the
// package constructors are sorted by start; operations that require sorted
// input say so.
//
// A Collection may contain overlapping or duplicate epochs. Combine resolves
// the redundancy introduced by single-epoch containment, MergeWithin and
// MergeNeighbors fuse epochs wholesale.
type Collection []Epoch

// Make constructs a Collection from the given epochs, sorted by start. The
// input slice is not retained.
func Make(epochs ...Epoch) Collection {
	c := Collection(slices.Clone(epochs))
	c.Sort()
	return c
}

// FromArrays constructs a Collection from parallel start/stop/label arrays.
// labels may be nil, in which case all epochs are unlabeled. The result is
// sorted by start.
func FromArrays(starts, stops []float64, labels []string) (Collection, error) {
	if len(starts) != len(stops) {
		return nil, errors.Newf(
			"epochs: mismatched array lengths: %d starts, %d stops", len(starts), len(stops))
	}
	if labels != nil && len(labels) != len(starts) {
		return nil, errors.Newf(
			"epochs: mismatched array lengths: %d starts, %d labels", len(starts), len(labels))
	}
	c := make(Collection, len(starts))
	for i := range starts {
		c[i] = Epoch{Start: starts[i], Stop: stops[i]}
		if labels != nil {
			c[i].Label = labels[i]
		}
	}
	c.Sort()
	return c, nil
}

// Len returns the number of epochs in the collection.
func (c Collection) Len() int {
	return len(c)
}

// Empty returns true if the collection contains no epochs.
func (c Collection) Empty() bool {
	return len(c) == 0
}

// At returns the i'th epoch in the collection.
func (c Collection) At(i int) Epoch {
	invariants.CheckBounds(i, len(c))
	return c[i]
}

// Starts returns the start boundaries, in collection order.
func (c Collection) Starts() []float64 {
	res := make([]float64, len(c))
	for i := range c {
		res[i] = c[i].Start
	}
	return res
}

// Stops returns the stop boundaries, in collection order.
func (c Collection) Stops() []float64 {
	res := make([]float64, len(c))
	for i := range c {
		res[i] = c[i].Stop
	}
	return res
}

// Durations returns the per-epoch durations, in collection order.
func (c Collection) Durations() []float64 {
	res := make([]float64, len(c))
	for i := range c {
		res[i] = c[i].Duration()
	}
	return res
}

// Labels returns the labels, in collection order.
func (c Collection) Labels() []string {
	res := make([]string, len(c))
	for i := range c {
		res[i] = c[i].Label
	}
	return res
}

// Bounds returns the earliest start and the latest stop across the
// collection, or zeros if the collection is empty.
func (c Collection) Bounds() (start, stop float64) {
	if len(c) == 0 {
		return 0, 0
	}
	start, stop = c[0].Start, c[0].Stop
	for _, e := range c[1:] {
		start = min(start, e.Start)
		stop = max(stop, e.Stop)
	}
	return start, stop
}

// TotalDuration returns the sum of the epoch durations. Overlapping epochs
// are counted multiple times.
func (c Collection) TotalDuration() float64 {
	var total float64
	for i := range c {
		total += c[i].Duration()
	}
	return total
}

// Clone returns a copy of the collection.
func (c Collection) Clone() Collection {
	return slices.Clone(c)
}

// Equal returns true if the two collections contain the same epochs in the
// same order.
func (c Collection) Equal(other Collection) bool {
	return slices.Equal(c, other)
}

// SetLabels returns a copy of the collection with the given labels applied
// positionally. It returns an error if the lengths differ.
func (c Collection) SetLabels(labels []string) (Collection, error) {
	if len(labels) != len(c) {
		return nil, errors.Newf(
			"epochs: mismatched label length: %d epochs, %d labels", len(c), len(labels))
	}
	res := slices.Clone(c)
	for i := range res {
		res[i].Label = labels[i]
	}
	return res, nil
}

// UniqueLabels returns the distinct labels present in the collection, sorted.
func (c Collection) UniqueLabels() []string {
	seen := make(map[string]struct{})
	var labels []string
	for i := range c {
		if _, ok := seen[c[i].Label]; !ok {
			seen[c[i].Label] = struct{}{}
			labels = append(labels, c[i].Label)
		}
	}
	slices.Sort(labels)
	return labels
}

// HasLabels returns true if every epoch carries a non-empty label.
func (c Collection) HasLabels() bool {
	for i := range c {
		if c[i].Label == "" {
			return false
		}
	}
	return true
}

// LabelsUnique returns true if no label appears on more than one epoch.
func (c Collection) LabelsUnique() bool {
	seen := make(map[string]struct{}, len(c))
	for i := range c {
		if _, ok := seen[c[i].Label]; ok {
			return false
		}
		seen[c[i].Label] = struct{}{}
	}
	return true
}

// Concat returns a new collection containing the epochs of both collections,
// sorted by start.
func (c Collection) Concat(other Collection) Collection {
	res := make(Collection, 0, len(c)+len(other))
	res = append(res, c...)
	res = append(res, other...)
	res.Sort()
	return res
}

// Shift returns a copy of the collection with every boundary translated by
// dt seconds.
func (c Collection) Shift(dt float64) Collection {
	res := slices.Clone(c)
	for i := range res {
		res[i].Start += dt
		res[i].Stop += dt
	}
	return res
}

// Sort sorts the collection in place by start boundary. The sort is stable:
// epochs with equal starts keep their relative order.
func (c Collection) Sort() {
	slices.SortStableFunc(c, func(a, b Epoch) int {
		return cmp.Compare(a.Start, b.Start)
	})
}

// Sorted returns a sorted copy of the collection.
func (c Collection) Sorted() Collection {
	res := slices.Clone(c)
	res.Sort()
	return res
}

// AdjacentOverlaps returns true if any consecutive pair of epochs overlaps.
// The collection must be sorted by start; in that case any two overlapping
// epochs imply an overlapping consecutive pair, so this is equivalent to an
// all-pairs check.
func (c Collection) AdjacentOverlaps() bool {
	c.assertSorted()
	for i := 1; i < len(c); i++ {
		if c[i].Start < c[i-1].Stop {
			return true
		}
	}
	return false
}

// assertSorted validates the sorted-by-start precondition in invariant
// builds.
func (c Collection) assertSorted() {
	if invariants.Enabled {
		for i := 1; i < len(c); i++ {
			if c[i].Start < c[i-1].Start {
				panic(errors.AssertionFailedf(
					"epochs: collection not sorted: start %g at index %d after %g", c[i].Start, i, c[i-1].Start))
			}
		}
	}
}
