// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ephyslab/epochs/internal/epochgen"
	"github.com/stretchr/testify/require"
)

func TestCombineContainment(t *testing.T) {
	// B's boundaries both lie strictly inside A, so they are both pulled out
	// to A's boundaries and B collapses into a duplicate of A.
	c := Make(
		Epoch{Start: 0, Stop: 10},
		Epoch{Start: 2, Stop: 5},
	)
	require.Equal(t, Make(Epoch{Start: 0, Stop: 10}), c.Combine())
}

func TestCombineAmbiguousOverlap(t *testing.T) {
	// Two identical containers shield the inner epoch: each of its boundaries
	// is inside two other epochs, so neither boundary moves. The twin
	// containers deduplicate.
	c := Make(
		Epoch{Start: 0, Stop: 10},
		Epoch{Start: 0, Stop: 10},
		Epoch{Start: 2, Stop: 5},
	)
	require.Equal(t, Make(
		Epoch{Start: 0, Stop: 10},
		Epoch{Start: 2, Stop: 5},
	), c.Combine())
}

func TestCombineThresholdOfOne(t *testing.T) {
	// Mixed case: boundaries contained in exactly one other epoch move,
	// boundaries contained in two stay put.
	//
	//   A=(0,3): stop 3 is inside both B and C, so it stays.
	//   B=(1,4): start 1 is inside A only, stop 4 is inside C only.
	//   C=(2,8): start 2 is inside both A and B, so it stays.
	c := Make(
		Epoch{Start: 0, Stop: 3},
		Epoch{Start: 1, Stop: 4},
		Epoch{Start: 2, Stop: 8},
	)
	require.Equal(t, Collection{
		{Start: 0, Stop: 3},
		{Start: 0, Stop: 8},
		{Start: 2, Stop: 8},
	}, c.Combine())
}

func TestCombineNoOverlapIdentity(t *testing.T) {
	c := Make(
		Epoch{Start: 0, Stop: 1},
		Epoch{Start: 5, Stop: 6},
	)
	require.Equal(t, c, c.Combine())

	// Unsorted input comes back sorted.
	u := Collection{
		{Start: 5, Stop: 6},
		{Start: 0, Stop: 1},
	}
	require.Equal(t, Collection{
		{Start: 0, Stop: 1},
		{Start: 5, Stop: 6},
	}, u.Combine())
}

func TestCombinePartialStartOverlap(t *testing.T) {
	// Artifact windows from a real recording. The 4th window starts inside
	// the 3rd, gets pulled out to its boundaries, and deduplicates away.
	c, err := FromArrays(
		[]float64{0, 1079.28, 1130.82, 1131.13},
		[]float64{0.2, 1082.91, 1140.80, 1131.53},
		nil,
	)
	require.NoError(t, err)
	combined := c.Combine()
	require.Equal(t, Collection{
		{Start: 0, Stop: 0.2},
		{Start: 1079.28, Stop: 1082.91},
		{Start: 1130.82, Stop: 1140.80},
	}, combined)
}

func TestCombineIdempotentOnMerged(t *testing.T) {
	testCases := []Collection{
		Make(Epoch{Start: 0, Stop: 10}, Epoch{Start: 2, Stop: 5}),
		Make(Epoch{Start: 0, Stop: 1}, Epoch{Start: 5, Stop: 6}),
		Make(
			Epoch{Start: 0, Stop: 0.2},
			Epoch{Start: 1079.28, Stop: 1082.91},
			Epoch{Start: 1130.82, Stop: 1140.80},
			Epoch{Start: 1131.13, Stop: 1131.53},
		),
	}
	for _, c := range testCases {
		merged := c.Combine()
		require.Equal(t, merged, merged.Combine())
	}
}

func TestCombinePreservesLabels(t *testing.T) {
	// Boundary replacement moves boundaries but never touches labels, and
	// epochs that differ only in label are not duplicates of each other.
	c := Make(
		Epoch{Start: 0, Stop: 10, Label: "artifact"},
		Epoch{Start: 2, Stop: 5, Label: "noise"},
	)
	require.Equal(t, Collection{
		{Start: 0, Stop: 10, Label: "artifact"},
		{Start: 0, Stop: 10, Label: "noise"},
	}, c.Combine())
}

func TestCombineSortInvariant(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewPCG(0, seed))

	for run := 0; run < 100; run++ {
		starts, stops, labels := epochgen.Generate(rng, epochgen.Config{
			Count:           2 + rng.IntN(50),
			OverlapFraction: 0.5,
			Labels:          []string{"a", "b"},
		})
		c, err := FromArrays(starts, stops, labels)
		require.NoError(t, err)
		combined := c.Combine()
		for i := 1; i < len(combined); i++ {
			require.LessOrEqual(t, combined[i-1].Start, combined[i].Start)
		}
	}
}

func TestCombineInPlaceMatchesCopy(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewPCG(0, seed))

	for run := 0; run < 100; run++ {
		starts, stops, _ := epochgen.Generate(rng, epochgen.Config{
			Count:           2 + rng.IntN(30),
			OverlapFraction: 0.7,
		})
		c, err := FromArrays(starts, stops, nil)
		require.NoError(t, err)

		orig := c.Clone()
		copied := c.Combine()
		// The copy-mode operation must not touch the receiver.
		require.Equal(t, orig, c)

		c.CombineInPlace()
		require.Equal(t, copied, c)
	}
}

func TestMergeWithin(t *testing.T) {
	c := Make(
		Epoch{Start: 0, Stop: 1, Label: "a"},
		Epoch{Start: 1.5, Stop: 3, Label: "b"},
		Epoch{Start: 10, Stop: 12, Label: "c"},
	)
	// Gaps under dt close up and labels are dropped.
	require.Equal(t, Collection{
		{Start: 0, Stop: 3},
		{Start: 10, Stop: 12},
	}, c.MergeWithin(1))

	// The merge cascades: each absorbed epoch extends the span that the next
	// gap is measured against.
	cascade := Make(
		Epoch{Start: 0, Stop: 1},
		Epoch{Start: 1.9, Stop: 2},
		Epoch{Start: 2.5, Stop: 4},
	)
	require.Equal(t, Collection{{Start: 0, Stop: 4}}, cascade.MergeWithin(1))

	// A gap of exactly dt does not merge.
	exact := Make(
		Epoch{Start: 0, Stop: 1},
		Epoch{Start: 2, Stop: 3},
	)
	require.Equal(t, Collection{
		{Start: 0, Stop: 1},
		{Start: 2, Stop: 3},
	}, exact.MergeWithin(1))

	// Contained epochs do not shrink the span.
	contained := Make(
		Epoch{Start: 0, Stop: 10},
		Epoch{Start: 1, Stop: 2},
	)
	require.Equal(t, Collection{{Start: 0, Stop: 10}}, contained.MergeWithin(0.5))

	require.Equal(t, Collection{}, Collection{}.MergeWithin(1))
}

func TestMergeNeighbors(t *testing.T) {
	c := Make(
		Epoch{Start: 0, Stop: 1, Label: "rem"},
		Epoch{Start: 1, Stop: 2, Label: "rem"},
		Epoch{Start: 2, Stop: 3, Label: "nrem"},
		Epoch{Start: 3.5, Stop: 4, Label: "nrem"},
	)
	require.Equal(t, Collection{
		{Start: 0, Stop: 2, Label: "rem"},
		{Start: 2, Stop: 3, Label: "nrem"},
		{Start: 3.5, Stop: 4, Label: "nrem"},
	}, c.MergeNeighbors())

	// Touching epochs with different labels stay separate.
	mixed := Make(
		Epoch{Start: 0, Stop: 1, Label: "rem"},
		Epoch{Start: 1, Stop: 2, Label: "nrem"},
	)
	require.Equal(t, mixed, mixed.MergeNeighbors())
}
