// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ephyslab/epochs/internal/randvar"
	"github.com/ephyslab/epochs/internal/rate"
)

var randVarRE = regexp.MustCompile(`^(?:(uniform|zipf):)?(\d+)(?:-(\d+))?$`)

// parseRandVarSpec parses a random variable specification of the form
// "<distribution>:<min>[-<max>]". The distribution prefix is optional and
// defaults to uniform.
func parseRandVarSpec(d string) (randvar.Static, error) {
	m := randVarRE.FindStringSubmatch(d)
	if m == nil {
		return nil, errors.Newf("invalid random var spec: %s", d)
	}

	minVal, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, err
	}
	maxVal := minVal
	if m[3] != "" {
		maxVal, err = strconv.Atoi(m[3])
		if err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(m[1]) {
	case "", "uniform":
		return randvar.NewUniform(nil, uint64(minVal), uint64(maxVal)), nil
	case "zipf":
		return randvar.NewZipf(nil, uint64(minVal), uint64(maxVal), 0.99)
	default:
		return nil, errors.Newf("unknown distribution: %s", m[1])
	}
}

// parseRateSpec parses a rate specification of the form
// "<rand var spec>[/<fluctuate seconds>]".
func parseRateSpec(v string) (randvar.Static, time.Duration, error) {
	parts := strings.Split(v, "/")
	if len(parts) == 0 || len(parts) > 2 {
		return nil, 0, errors.Newf("invalid rate spec: %s", v)
	}
	r, err := parseRandVarSpec(parts[0])
	if err != nil {
		return nil, 0, err
	}
	// Don't fluctuate by default.
	fluctuateDuration := time.Duration(0)
	if len(parts) == 2 {
		fluctuateDurationFloat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, 0, err
		}
		fluctuateDuration = time.Duration(fluctuateDurationFloat) * time.Second
	}
	return r, fluctuateDuration, nil
}

// newFluctuatingRateLimiter constructs a rate limiter from a rate spec,
// re-drawing the rate from the spec's distribution on every fluctuation
// tick.
func newFluctuatingRateLimiter(maxOpsPerSec string) (*rate.Limiter, error) {
	rateDist, fluctuateDuration, err := parseRateSpec(maxOpsPerSec)
	if err != nil {
		return nil, err
	}
	limiter := rate.NewLimiter(float64(rateDist.Uint64()), 1)
	if fluctuateDuration != 0 {
		go func(limiter *rate.Limiter) {
			ticker := time.NewTicker(fluctuateDuration)
			for range ticker.C {
				limiter.SetRate(float64(rateDist.Uint64()))
			}
		}(limiter)
	}
	return limiter, nil
}
