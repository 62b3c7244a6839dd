// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package invariants provides assertion helpers that are enabled only in
// builds with the "invariants" or "race" build tags. In regular builds the
// helpers compile down to no-ops.
package invariants

import (
	"math/rand/v2"

	"github.com/ephyslab/epochs/internal/buildtags"
)

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = buildtags.Invariants || buildtags.Race

// RaceEnabled is true if we were built with the "race" build tag.
const RaceEnabled = buildtags.Race

// Sometimes returns true percent% of the time if we were built with the
// "invariants" or "race" build tags.
func Sometimes(percent int) bool {
	return Enabled && rand.Uint32N(100) < uint32(percent)
}
