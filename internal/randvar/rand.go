// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package randvar provides random variables drawn from configurable
// distributions, used to synthesize epoch workloads in tests and benchmarks.
package randvar

import "math/rand/v2"

// Static is a random variable with a fixed distribution.
type Static interface {
	Uint64() uint64
}

// NewRand creates a new random number generator with a random seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(0, rand.Uint64()))
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return NewRand()
}
