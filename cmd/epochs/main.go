// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	concurrency int
	duration    time.Duration
	numOps      uint64
	seed        uint64
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "epochs [command] (flags)",
	Short: "epochs benchmarking/introspection tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		combineCmd,
		sweepCmd,
	)

	for _, cmd := range []*cobra.Command{combineCmd, sweepCmd} {
		cmd.Flags().IntVarP(
			&concurrency, "concurrency", "c", 1, "number of concurrent workers")
		cmd.Flags().Uint64Var(
			&seed, "seed", 0, "random seed (0 means time-derived)")
		cmd.Flags().BoolVarP(
			&verbose, "verbose", "v", false, "enable verbose event logging")
	}

	combineCmd.Flags().DurationVarP(
		&duration, "duration", "d", 10*time.Second, "the duration to run (0, run forever)")
	combineCmd.Flags().Uint64VarP(
		&numOps, "num-ops", "n", 0, "maximum number of operations (0 means unlimited)")
	combineCmd.Flags().StringVar(
		&combineConfig.epochs, "epochs", "uniform:100-1000",
		"number of epochs per generated collection (<distribution>:<min>[-<max>])")
	combineCmd.Flags().StringVar(
		&combineConfig.durations, "durations", "uniform:50-500",
		"epoch durations in milliseconds (<distribution>:<min>[-<max>])")
	combineCmd.Flags().StringVar(
		&combineConfig.gaps, "gaps", "uniform:0-1000",
		"inter-epoch gaps in milliseconds (<distribution>:<min>[-<max>])")
	combineCmd.Flags().Float64Var(
		&combineConfig.overlap, "overlap", 0.3,
		"fraction of epochs that overlap their predecessor")
	combineCmd.Flags().StringVar(
		&combineConfig.maxOpsPerSec, "rate", "0",
		"max ops per second (0 means unlimited; <spec>[/<fluctuate seconds>])")

	sweepCmd.Flags().IntVar(
		&sweepConfig.minEpochs, "min-epochs", 1<<4, "smallest collection size to sweep")
	sweepCmd.Flags().IntVar(
		&sweepConfig.maxEpochs, "max-epochs", 1<<16, "largest collection size to sweep")
	sweepCmd.Flags().IntVar(
		&sweepConfig.runs, "runs", 5, "number of runs per collection size")
	sweepCmd.Flags().Float64Var(
		&sweepConfig.overlap, "overlap", 0.3,
		"fraction of epochs that overlap their predecessor")
	sweepCmd.Flags().IntVar(
		&sweepConfig.graphHeight, "graph-height", 10, "height of the latency graph (0 disables it)")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
