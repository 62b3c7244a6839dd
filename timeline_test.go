// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/ephyslab/epochs/internal/buildtags"
)

func TestTimeline(t *testing.T) {
	var tl Timeline
	tl.Init()

	datadriven.RunTest(t, "testdata/timeline", func(t *testing.T, td *datadriven.TestData) string {
		var out bytes.Buffer
		switch td.Cmd {
		case "reset":
			tl.Init()

		case "add":
			for line := range crstrings.LinesSeq(td.Input) {
				start, stop := parseTimelineSpan(line)
				tl.Add(start, stop)
			}

		case "excise":
			for line := range crstrings.LinesSeq(td.Input) {
				start, stop := parseTimelineSpan(line)
				tl.Excise(start, stop)
			}

		case "overlap":
			for line := range crstrings.LinesSeq(td.Input) {
				start, stop := parseTimelineSpan(line)
				res := "overlap"
				if !tl.Overlaps(start, stop) {
					res = "no overlap"
				}
				fmt.Fprintf(&out, "[%g, %g): %s\n", start, stop, res)
			}

		case "is-empty":
			if tl.IsEmpty() {
				out.WriteString("empty\n")
			} else {
				out.WriteString("not empty\n")
			}

		case "len":
			fmt.Fprintf(&out, "%d regions\n", tl.Len())

		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
		}
		out.WriteString("Timeline:\n")
		for l := range crstrings.LinesSeq(tl.String()) {
			fmt.Fprintf(&out, "  %s\n", l)
		}
		return out.String()
	})
}

func parseTimelineSpan(line string) (start, stop float64) {
	n, err := fmt.Sscanf(line, "%g %g", &start, &stop)
	if err != nil || n != 2 {
		panic(fmt.Sprintf("error parsing line %q: n=%d err=%v", line, n, err))
	}
	return start, stop
}

func TestTimelineFromCollection(t *testing.T) {
	c := Make(
		Epoch{Start: 0, Stop: 2, Label: "a"},
		Epoch{Start: 1, Stop: 3, Label: "b"},
		Epoch{Start: 10, Stop: 12, Label: "c"},
	)
	var tl Timeline
	tl.Init()
	tl.AddCollection(c)

	if !tl.Overlaps(2.5, 5) {
		t.Fatalf("expected overlap at [2.5, 5)")
	}
	if tl.Overlaps(3, 10) {
		t.Fatalf("unexpected overlap at [3, 10)")
	}
	// [0,1) x1, [1,2) x2, [2,3) x1, [10,12) x1.
	if got := tl.Len(); got != 4 {
		t.Fatalf("expected 4 regions, got %d", got)
	}
}

// TestTimelineRandomized cross-checks the Timeline implementation against a
// trivial implementation.
func TestTimelineRandomized(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewPCG(0, seed))

	numTests := 1000
	if buildtags.SlowBuild {
		// Reduce the number of test runs in instrumented builds.
		numTests = 200
	}
	for test := 0; test < numTests; test++ {
		var tl Timeline
		tl.Init()
		var naive naiveTimeline

		points := 4 + rng.IntN(40)
		for op := 0; op < 300; op++ {
			v1, v2 := rng.IntN(points), rng.IntN(points)
			if v1 > v2 {
				v1, v2 = v2, v1
			}
			if v1 == v2 {
				v2++
			}
			start, stop := float64(v1), float64(v2)

			if n := rng.IntN(10); n < 2 {
				tl.Add(start, stop)
				naive.Add(start, stop)
			} else if n == 9 {
				tl.Excise(start, stop)
				naive.Excise(start, stop)
			} else {
				overlap := tl.Overlaps(start, stop)
				expected := naive.Overlaps(start, stop)
				if expected != overlap {
					t.Fatalf("expected overlap=%t, got %t for [%g, %g)", expected, overlap, start, stop)
				}
			}

			if empty := tl.IsEmpty(); empty != naive.IsEmpty() {
				t.Fatalf("expected empty=%t, got %t", naive.IsEmpty(), empty)
			}
		}
	}
}

// naiveTimeline tracks covered spans as a flat list.
type naiveTimeline struct {
	spans []Epoch
}

func (nt *naiveTimeline) Add(start, stop float64) {
	nt.spans = append(nt.spans, Epoch{Start: start, Stop: stop})
}

func (nt *naiveTimeline) Overlaps(start, stop float64) bool {
	for _, sp := range nt.spans {
		if sp.Start < stop && start < sp.Stop {
			return true
		}
	}
	return false
}

func (nt *naiveTimeline) Excise(start, stop float64) {
	var overlapping []Epoch
	nt.spans = slices.DeleteFunc(nt.spans, func(sp Epoch) bool {
		if sp.Start < stop && start < sp.Stop {
			overlapping = append(overlapping, sp)
			return true
		}
		return false
	})
	for _, sp := range overlapping {
		if sp.Start < start {
			nt.spans = append(nt.spans, Epoch{Start: sp.Start, Stop: start})
		}
		if stop < sp.Stop {
			nt.spans = append(nt.spans, Epoch{Start: stop, Stop: sp.Stop})
		}
	}
}

func (nt *naiveTimeline) IsEmpty() bool {
	return len(nt.spans) == 0
}
