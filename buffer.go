// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import "github.com/cockroachdb/errors"

// Buffer describes how far to extend epochs on each side, in seconds.
// Buffering is used to widen detected artifact windows so that boundary
// effects around the detection are excluded along with the artifact itself.
type Buffer struct {
	// Before is subtracted from every start.
	Before float64
	// After is added to every stop.
	After float64
}

// SymmetricBuffer returns a Buffer extending both boundaries by v seconds.
func SymmetricBuffer(v float64) Buffer {
	return Buffer{Before: v, After: v}
}

// MakeBuffer constructs a Buffer from one or two values: a single value is
// broadcast to both sides, two values set the before and after extents
// respectively. Any other arity is an error.
func MakeBuffer(vals ...float64) (Buffer, error) {
	switch len(vals) {
	case 1:
		return Buffer{Before: vals[0], After: vals[0]}, nil
	case 2:
		return Buffer{Before: vals[0], After: vals[1]}, nil
	default:
		return Buffer{}, errors.Newf("epochs: buffer must have one or two values, got %d", len(vals))
	}
}

// Expand mutates the collection, extending every epoch's start backward by
// buf.Before and stop forward by buf.After. It performs no containment
// logic; expanded epochs may overlap their neighbors. Start order is
// preserved.
func (c Collection) Expand(buf Buffer) {
	for i := range c {
		c[i].Start -= buf.Before
		c[i].Stop += buf.After
	}
}

// Expanded returns an expanded copy of the collection, leaving the receiver
// untouched.
func (c Collection) Expanded(buf Buffer) Collection {
	res := c.Clone()
	res.Expand(buf)
	return res
}
