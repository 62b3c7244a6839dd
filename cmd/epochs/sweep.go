// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ephyslab/epochs"
	"github.com/ephyslab/epochs/internal/epochgen"
	"github.com/ephyslab/epochs/internal/randvar"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var sweepConfig struct {
	minEpochs   int
	maxEpochs   int
	runs        int
	overlap     float64
	graphHeight int
}

var sweepCmd = &cobra.Command{
	Use:   "sweep (flags)",
	Short: "sweep combine latency across collection sizes",
	Long: `
Measure combine latency across a range of collection sizes, doubling the
size at each step, and plot how it scales.
`,
	Args: cobra.ExactArgs(0),
	RunE: runSweep,
}

type sweepResult struct {
	size      int
	avg       time.Duration
	min       time.Duration
	max       time.Duration
	reduction float64
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepConfig.runs < 1 {
		return errors.Newf("--runs must be positive")
	}
	if sweepConfig.minEpochs < 2 || sweepConfig.maxEpochs < sweepConfig.minEpochs {
		return errors.Newf("invalid sweep range [%d, %d]",
			sweepConfig.minEpochs, sweepConfig.maxEpochs)
	}

	var results []sweepResult
	for size := sweepConfig.minEpochs; size <= sweepConfig.maxEpochs; size *= 2 {
		res, err := sweepSize(size)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Printf("%8d epochs: avg %s\n", size, res.avg)
		}
		results = append(results, res)
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Epochs", "Avg", "Min", "Max", "Reduction"})
	for _, r := range results {
		tbl.Append([]string{
			fmt.Sprintf("%d", r.size),
			fmt.Sprintf("%.3fms", r.avg.Seconds()*1000),
			fmt.Sprintf("%.3fms", r.min.Seconds()*1000),
			fmt.Sprintf("%.3fms", r.max.Seconds()*1000),
			fmt.Sprintf("%.1f%%", r.reduction),
		})
	}
	tbl.Render()

	if sweepConfig.graphHeight > 0 && len(results) > 1 {
		values := make([]float64, len(results))
		for i, r := range results {
			values[i] = r.avg.Seconds() * 1000
		}
		fmt.Println("\ncombine latency (ms) per doubling of collection size:")
		fmt.Println(asciigraph.Plot(values, asciigraph.Height(sweepConfig.graphHeight)))
	}
	return nil
}

// sweepSize generates the per-run collections concurrently (generation
// dominates at large sizes), then times the combines serially so the
// measurements don't perturb each other.
func sweepSize(size int) (sweepResult, error) {
	cols := make([]epochs.Collection, sweepConfig.runs)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)
	for i := 0; i < sweepConfig.runs; i++ {
		g.Go(func() error {
			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewPCG(seed, uint64(size*sweepConfig.runs+i)))
			} else {
				rng = randvar.NewRand()
			}
			starts, stops, labels := epochgen.Generate(rng, epochgen.Config{
				Count:           size,
				OverlapFraction: sweepConfig.overlap,
			})
			col, err := epochs.FromArrays(starts, stops, labels)
			if err != nil {
				return err
			}
			cols[i] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sweepResult{}, err
	}

	res := sweepResult{size: size, min: time.Duration(math.MaxInt64)}
	var total time.Duration
	var out int
	for i := range cols {
		start := time.Now()
		cols[i].CombineInPlace()
		d := time.Since(start)
		total += d
		res.min = min(res.min, d)
		res.max = max(res.max, d)
		out += cols[i].Len()
	}
	res.avg = total / time.Duration(sweepConfig.runs)
	res.reduction = 100 * (1 - float64(out)/float64(size*sweepConfig.runs))
	return res, nil
}
