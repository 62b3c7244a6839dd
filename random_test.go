// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"bytes"
	"fmt"
	randv1 "math/rand"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/metamorphic"
	"github.com/ephyslab/epochs/internal/epochgen"
	"github.com/kr/pretty"
	"github.com/pmezard/go-difflib/difflib"
)

// TestRandomizedOps runs a random schedule of operations against two
// initially identical collections, routing one through the copying APIs and
// the other through the in-place APIs where they exist, and verifies that
// the two stay identical throughout. It also checks that every operation
// leaves the collection sorted by start.
func TestRandomizedOps(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewPCG(0, seed))

	for run := 0; run < 20; run++ {
		cfg := epochgen.Config{
			Count:           10 + rng.IntN(200),
			OverlapFraction: 0.3,
			Labels:          []string{"", "artifact", "noise"},
		}
		starts, stops, labels := epochgen.Generate(rng, cfg)
		a, err := FromArrays(starts, stops, labels)
		if err != nil {
			t.Fatal(err)
		}
		r := &randOpRunner{rng: rng, a: a, b: a.Clone()}

		nextOp := metamorphic.Weighted[func() string]{
			{Weight: 5, Item: r.runCombine},
			{Weight: 3, Item: r.runExpand},
			{Weight: 2, Item: r.runMergeWithin},
			{Weight: 2, Item: r.runMergeNeighbors},
			{Weight: 1, Item: r.runTruncate},
			{Weight: 1, Item: r.runExcise},
			{Weight: 1, Item: r.runShift},
		}.RandomDeck(randv1.New(randv1.NewSource(rng.Int64())))

		var historyA, historyB bytes.Buffer
		for i := 0; i < 50; i++ {
			desc := nextOp()()
			fmt.Fprintf(&historyA, "%s = %s\n", desc, r.a)
			fmt.Fprintf(&historyB, "%s = %s\n", desc, r.b)
			if !bytes.Equal(historyA.Bytes(), historyB.Bytes()) {
				t.Fatal(randOpsDiff(r.a, r.b, historyA.String(), historyB.String()))
			}
			for j := 1; j < len(r.a); j++ {
				if r.a[j].Start < r.a[j-1].Start {
					t.Fatalf("%s left the collection unsorted at %d:\n%s", desc, j, r.a)
				}
			}
		}
		if !r.a.Equal(r.b) {
			t.Fatal(randOpsDiff(r.a, r.b, historyA.String(), historyB.String()))
		}
	}
}

type randOpRunner struct {
	rng *rand.Rand
	a   Collection // copying APIs
	b   Collection // in-place APIs where available
}

// window returns a random window overlapping the collection's bounds.
func (r *randOpRunner) window() (w0, w1 float64) {
	if r.a.Empty() {
		return 0, 1
	}
	start, stop := r.a.Bounds()
	span := stop - start
	w0 = start + r.rng.Float64()*span
	w1 = w0 + r.rng.Float64()*span
	return w0, w1
}

func (r *randOpRunner) runCombine() string {
	r.a = r.a.Combine()
	r.b.CombineInPlace()
	return "combine"
}

func (r *randOpRunner) runExpand() string {
	v := float64(r.rng.IntN(10)) / 10.0
	buf := SymmetricBuffer(v)
	r.a = r.a.Expanded(buf)
	r.b.Expand(buf)
	return fmt.Sprintf("expand(%g)", v)
}

func (r *randOpRunner) runMergeWithin() string {
	dt := float64(r.rng.IntN(20)) / 10.0
	r.a = r.a.MergeWithin(dt)
	r.b = r.b.MergeWithin(dt)
	return fmt.Sprintf("merge-within(%g)", dt)
}

func (r *randOpRunner) runMergeNeighbors() string {
	r.a = r.a.MergeNeighbors()
	r.b = r.b.MergeNeighbors()
	return "merge-neighbors"
}

func (r *randOpRunner) runTruncate() string {
	w0, w1 := r.window()
	r.a = r.a.Truncate(w0, w1)
	r.b = r.b.Truncate(w0, w1)
	return fmt.Sprintf("truncate(%g, %g)", w0, w1)
}

func (r *randOpRunner) runExcise() string {
	w0, w1 := r.window()
	r.a = r.a.Excise(w0, w1)
	r.b = r.b.Excise(w0, w1)
	return fmt.Sprintf("excise(%g, %g)", w0, w1)
}

func (r *randOpRunner) runShift() string {
	dt := float64(r.rng.IntN(100)) - 50
	r.a = r.a.Shift(dt)
	r.b = r.b.Shift(dt)
	return fmt.Sprintf("shift(%g)", dt)
}

func randOpsDiff(a, b Collection, historyA, historyB string) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "Copying:")
	fmt.Fprintln(&buf, a)
	fmt.Fprintln(&buf, "In-place:")
	fmt.Fprintln(&buf, b)
	fmt.Fprintln(&buf, "Operations diff:")
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:       difflib.SplitLines(historyA),
		B:       difflib.SplitLines(historyB),
		Context: 5,
	})
	if err != nil {
		panic(err)
	}
	fmt.Fprintln(&buf, diff)
	if d := pretty.Diff(a, b); len(d) > 0 {
		fmt.Fprintln(&buf, "Structural diff:")
		fmt.Fprintln(&buf, strings.Join(d, "\n"))
	}
	return buf.String()
}
