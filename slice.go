// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

// TimeSlice returns the epochs lying entirely within [t0, t1]. Epochs that
// merely intersect the window are excluded; use Truncate to clamp them
// instead.
func (c Collection) TimeSlice(t0, t1 float64) Collection {
	res := make(Collection, 0, len(c))
	for _, e := range c {
		if e.Start >= t0 && e.Stop <= t1 {
			res = append(res, e)
		}
	}
	return res
}

// Truncate returns the epochs intersecting [t0, t1], with any epoch
// extending past a bound clamped to it. Epochs that only touch a bound are
// dropped rather than reduced to zero length.
func (c Collection) Truncate(t0, t1 float64) Collection {
	res := make(Collection, 0, len(c))
	for _, e := range c {
		if e.Stop <= t0 || e.Start >= t1 {
			continue
		}
		e.Start = max(e.Start, t0)
		e.Stop = min(e.Stop, t1)
		res = append(res, e)
	}
	return res
}

// DurationSlice returns the epochs whose duration lies in [minDur, maxDur],
// inclusive on both ends. Pass math.Inf(1) as maxDur for no upper bound.
func (c Collection) DurationSlice(minDur, maxDur float64) Collection {
	res := make(Collection, 0, len(c))
	for _, e := range c {
		if d := e.Duration(); d >= minDur && d <= maxDur {
			res = append(res, e)
		}
	}
	return res
}

// LabelSlice returns the epochs whose label is among the given labels.
func (c Collection) LabelSlice(labels ...string) Collection {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	res := make(Collection, 0, len(c))
	for _, e := range c {
		if _, ok := set[e.Label]; ok {
			res = append(res, e)
		}
	}
	return res
}
