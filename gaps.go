// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import "github.com/cockroachdb/errors"

// GapFillMethod selects how FillGaps assigns the space between consecutive
// epochs.
type GapFillMethod int8

const (
	// GapFillLeft extends each epoch's stop forward to the next epoch's
	// start.
	GapFillLeft GapFillMethod = iota
	// GapFillRight pulls each epoch's start backward to the previous epoch's
	// stop.
	GapFillRight
	// GapFillNearest splits each gap at its midpoint, extending the two
	// adjacent epochs toward each other.
	GapFillNearest
)

// String implements fmt.Stringer.
func (m GapFillMethod) String() string {
	switch m {
	case GapFillLeft:
		return "left"
	case GapFillRight:
		return "right"
	case GapFillNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// FillGaps returns a copy of the collection with the space between
// consecutive epochs assigned according to method. Only positive gaps are
// filled; overlapping epochs are left as they are. The collection must be
// sorted by start.
func (c Collection) FillGaps(method GapFillMethod) Collection {
	c.assertSorted()
	res := c.Clone()
	for i := 1; i < len(res); i++ {
		gap := res[i].Start - res[i-1].Stop
		if gap <= 0 {
			continue
		}
		switch method {
		case GapFillLeft:
			res[i-1].Stop = res[i].Start
		case GapFillRight:
			res[i].Start = res[i-1].Stop
		case GapFillNearest:
			mid := res[i-1].Stop + gap/2
			res[i-1].Stop = mid
			res[i].Start = mid
		default:
			panic(errors.AssertionFailedf("epochs: unknown gap fill method %d", int(method)))
		}
	}
	return res
}

// Excise removes the window [t0, t1] from the collection: epochs wholly
// inside are dropped, epochs straddling one bound are clamped, and epochs
// spanning the whole window are split into two flanks that keep the original
// label. Epochs that only touch a bound are kept whole. The result is sorted
// by start.
func (c Collection) Excise(t0, t1 float64) Collection {
	res := make(Collection, 0, len(c))
	for _, e := range c {
		switch {
		case e.Stop <= t0 || e.Start >= t1:
			// Entirely outside the window.
			res = append(res, e)
		case e.Start < t0 && e.Stop > t1:
			// Spans the window: split into two flanks.
			res = append(res,
				Epoch{Start: e.Start, Stop: t0, Label: e.Label},
				Epoch{Start: t1, Stop: e.Stop, Label: e.Label})
		case e.Start < t0:
			// Tail lies inside the window.
			e.Stop = t0
			res = append(res, e)
		case e.Stop > t1:
			// Head lies inside the window.
			e.Start = t1
			res = append(res, e)
		default:
			// Wholly inside: dropped.
		}
	}
	res.Sort()
	return res
}
