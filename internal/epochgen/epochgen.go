// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package epochgen synthesizes random epoch workloads for tests and
// benchmarks. It produces raw start/stop/label arrays so that it can be used
// both from the epochs package tests and from external tooling.
package epochgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/ephyslab/epochs/internal/randvar"
)

// Config parameterizes Generate.
type Config struct {
	// Count is the number of epochs to generate.
	Count int
	// Duration draws epoch durations, in milliseconds.
	Duration randvar.Static
	// Gap draws the spacing between an epoch's stop and the next epoch's
	// start, in milliseconds.
	Gap randvar.Static
	// OverlapFraction is the probability that an epoch starts strictly inside
	// its predecessor instead of after it. Depending on the drawn duration,
	// the epoch either straddles the predecessor's stop boundary or is wholly
	// contained within it.
	OverlapFraction float64
	// Labels is the set of labels to draw from. If empty, all epochs are
	// unlabeled.
	Labels []string
	// LabelDist draws indices into Labels. If nil, indices are drawn
	// uniformly.
	LabelDist randvar.Static
}

// EnsureDefaults sets the default values for any unset fields and returns the
// receiver for chaining.
func (c *Config) EnsureDefaults() *Config {
	if c.Count == 0 {
		c.Count = 100
	}
	if c.Duration == nil {
		c.Duration = randvar.NewUniform(nil, 50, 500)
	}
	if c.Gap == nil {
		c.Gap = randvar.NewUniform(nil, 0, 1000)
	}
	if len(c.Labels) > 0 && c.LabelDist == nil {
		c.LabelDist = randvar.NewUniform(nil, 0, uint64(len(c.Labels)-1))
	}
	return c
}

// Generate produces start/stop/label arrays for cfg.Count epochs. Times are
// in seconds. Starts are nondecreasing and every stop lies one drawn
// duration after its start.
func Generate(rng *rand.Rand, cfg Config) (starts, stops []float64, labels []string) {
	cfg.EnsureDefaults()
	starts = make([]float64, cfg.Count)
	stops = make([]float64, cfg.Count)
	labels = make([]string, cfg.Count)

	var t float64
	for i := 0; i < cfg.Count; i++ {
		dur := float64(cfg.Duration.Uint64()) / 1000.0
		if i > 0 && rng.Float64() < cfg.OverlapFraction {
			// Start strictly inside the previous epoch.
			prevDur := stops[i-1] - starts[i-1]
			starts[i] = starts[i-1] + rng.Float64()*prevDur
		} else {
			starts[i] = t + float64(cfg.Gap.Uint64())/1000.0
		}
		stops[i] = starts[i] + dur
		if len(cfg.Labels) > 0 {
			labels[i] = cfg.Labels[int(cfg.LabelDist.Uint64())%len(cfg.Labels)]
		}
		if stops[i] > t {
			t = stops[i]
		}
	}
	return starts, stops, labels
}

// Describe returns a short human-readable summary of the configuration, used
// in benchmark output.
func (c Config) Describe() string {
	return fmt.Sprintf("n=%d overlap=%.2f labels=%d", c.Count, c.OverlapFraction, len(c.Labels))
}
