// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

// DurationsByLabel returns the total duration carried by each label.
// Unlabeled epochs accumulate under the empty string.
func (c Collection) DurationsByLabel() map[string]float64 {
	res := make(map[string]float64)
	for _, e := range c {
		res[e.Label] += e.Duration()
	}
	return res
}

// ProportionByLabel returns, for each label, the fraction of the window
// [t0, t1] covered by epochs carrying that label. Epochs extending past the
// window are clipped to it. Labels with no coverage are simply absent from
// the map, which reads as zero.
func (c Collection) ProportionByLabel(t0, t1 float64) map[string]float64 {
	res := make(map[string]float64)
	if t1 <= t0 {
		return res
	}
	window := t1 - t0
	for _, e := range c.Truncate(t0, t1) {
		res[e.Label] += e.Duration() / window
	}
	return res
}
