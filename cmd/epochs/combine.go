// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ephyslab/epochs"
	"github.com/ephyslab/epochs/internal/epochgen"
	"github.com/ephyslab/epochs/internal/randvar"
	"github.com/ephyslab/epochs/internal/rate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var combineConfig struct {
	epochs       string
	durations    string
	gaps         string
	overlap      float64
	maxOpsPerSec string
}

var combineCmd = &cobra.Command{
	Use:   "combine (flags)",
	Short: "run the combine workload",
	Long: `
Continuously generate random epoch collections and combine their
overlapping intervals, reporting throughput and latency.
`,
	Args: cobra.ExactArgs(0),
	RunE: runCombine,
}

func runCombine(cmd *cobra.Command, args []string) error {
	countDist, err := parseRandVarSpec(combineConfig.epochs)
	if err != nil {
		return err
	}
	durDist, err := parseRandVarSpec(combineConfig.durations)
	if err != nil {
		return err
	}
	gapDist, err := parseRandVarSpec(combineConfig.gaps)
	if err != nil {
		return err
	}

	c := newCombineBench(countDist, durDist, gapDist)
	runTest(test{
		init: c.init,
		tick: c.tick,
		done: c.done,
	})
	return nil
}

type combineBench struct {
	reg       *histogramRegistry
	countDist randvar.Static
	cfg       epochgen.Config
	latency   *namedHistogram
	limiter   *rate.Limiter
	ops       atomic.Uint64
	epochsIn  atomic.Uint64
	epochsOut atomic.Uint64
}

func newCombineBench(countDist, durDist, gapDist randvar.Static) *combineBench {
	c := &combineBench{
		reg:       newHistogramRegistry(),
		countDist: countDist,
		cfg: epochgen.Config{
			Duration:        durDist,
			Gap:             gapDist,
			OverlapFraction: combineConfig.overlap,
		},
	}
	c.latency = c.reg.Register("combine")
	return c
}

func (c *combineBench) init(wg *sync.WaitGroup) {
	if combineConfig.maxOpsPerSec != "" && combineConfig.maxOpsPerSec != "0" {
		var err error
		c.limiter, err = newFluctuatingRateLimiter(combineConfig.maxOpsPerSec)
		if err != nil {
			log.Fatal(err)
		}
	}
	if verbose {
		fmt.Printf("workload: %s\n", c.cfg.Describe())
	}

	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go c.run(i, wg)
	}
}

func (c *combineBench) run(workerIdx int, wg *sync.WaitGroup) {
	defer wg.Done()

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, uint64(workerIdx)))
	} else {
		rng = randvar.NewRand()
	}

	for {
		if c.limiter != nil {
			c.limiter.Wait(1)
		}

		cfg := c.cfg
		cfg.Count = int(c.countDist.Uint64())
		starts, stops, labels := epochgen.Generate(rng, cfg)
		col, err := epochs.FromArrays(starts, stops, labels)
		if err != nil {
			log.Fatal(err)
		}
		n := col.Len()

		start := time.Now()
		col.CombineInPlace()
		c.latency.Record(time.Since(start))

		c.epochsIn.Add(uint64(n))
		c.epochsOut.Add(uint64(col.Len()))
		ops := c.ops.Add(1)
		if numOps > 0 && ops >= numOps {
			break
		}
	}
}

func (c *combineBench) tick(elapsed time.Duration, i int) {
	if i%20 == 0 {
		fmt.Println("_elapsed____ops/sec__p50(ms)__p95(ms)__p99(ms)_pMax(ms)")
	}
	c.reg.Tick(func(tick histogramTick) {
		h := tick.Hist
		fmt.Printf("%8s %10.1f %8.2f %8.2f %8.2f %8.2f\n",
			time.Duration(elapsed.Seconds()+0.5)*time.Second,
			float64(h.TotalCount())/tick.Elapsed.Seconds(),
			time.Duration(h.ValueAtQuantile(50)).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(95)).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(99)).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(100)).Seconds()*1000,
		)
	})
}

func (c *combineBench) done(elapsed time.Duration) {
	fmt.Println("\n_elapsed_____ops(total)___ops/sec(cum)__avg(ms)__p50(ms)__p95(ms)__p99(ms)_pMax(ms)")
	c.reg.Tick(func(tick histogramTick) {
		h := tick.Cumulative
		fmt.Printf("%7.1fs %14d %14.1f %8.2f %8.2f %8.2f %8.2f %8.2f\n",
			elapsed.Seconds(), h.TotalCount(),
			float64(h.TotalCount())/elapsed.Seconds(),
			time.Duration(h.Mean()).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(50)).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(95)).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(99)).Seconds()*1000,
			time.Duration(h.ValueAtQuantile(100)).Seconds()*1000)
	})
	fmt.Println()

	in := c.epochsIn.Load()
	out := c.epochsOut.Load()
	reduction := 0.0
	if in > 0 {
		reduction = 100 * (1 - float64(out)/float64(in))
	}
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Ops", "Epochs In", "Epochs Out", "Reduction"})
	tbl.Append([]string{
		fmt.Sprintf("%d", c.ops.Load()),
		fmt.Sprintf("%d", in),
		fmt.Sprintf("%d", out),
		fmt.Sprintf("%.1f%%", reduction),
	})
	tbl.Render()
}
