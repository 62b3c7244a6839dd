// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"strconv"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestMergeOps exercises the merging and buffering operations against
// hand-computed cases in testdata/merge.
func TestMergeOps(t *testing.T) {
	datadriven.RunTest(t, "testdata/merge", func(t *testing.T, td *datadriven.TestData) string {
		c := ParseCollection(td.Input)
		switch td.Cmd {
		case "combine":
			return c.Combine().String()

		case "merge-within":
			var gapStr string
			td.ScanArgs(t, "gap", &gapStr)
			gap, err := strconv.ParseFloat(gapStr, 64)
			if err != nil {
				td.Fatalf(t, "could not parse %q as float: %s", gapStr, err)
			}
			return c.MergeWithin(gap).String()

		case "merge-neighbors":
			return c.MergeNeighbors().String()

		case "expand":
			var vals []float64
			for _, arg := range td.CmdArgs {
				if arg.Key != "buffer" {
					td.Fatalf(t, "unknown arg: %s", arg.Key)
				}
				for _, v := range arg.Vals {
					f, err := strconv.ParseFloat(v, 64)
					if err != nil {
						td.Fatalf(t, "could not parse %q as float: %s", v, err)
					}
					vals = append(vals, f)
				}
			}
			buf, err := MakeBuffer(vals...)
			if err != nil {
				return err.Error()
			}
			return c.Expanded(buf).String()

		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
			return ""
		}
	})
}

// TestGapOps exercises gap filling and excision against hand-computed cases
// in testdata/gaps.
func TestGapOps(t *testing.T) {
	datadriven.RunTest(t, "testdata/gaps", func(t *testing.T, td *datadriven.TestData) string {
		c := ParseCollection(td.Input)
		switch td.Cmd {
		case "excise":
			var t0, t1 float64
			for _, arg := range td.CmdArgs {
				if arg.Key != "window" || len(arg.Vals) != 2 {
					td.Fatalf(t, "expected window=(t0,t1)")
				}
				for i, dst := range []*float64{&t0, &t1} {
					v, err := strconv.ParseFloat(arg.Vals[i], 64)
					if err != nil {
						td.Fatalf(t, "could not parse %q as float: %s", arg.Vals[i], err)
					}
					*dst = v
				}
			}
			return c.Excise(t0, t1).String()

		case "fill-gaps":
			var method string
			td.ScanArgs(t, "method", &method)
			var m GapFillMethod
			switch method {
			case "left":
				m = GapFillLeft
			case "right":
				m = GapFillRight
			case "nearest":
				m = GapFillNearest
			default:
				td.Fatalf(t, "unknown method %q", method)
			}
			return c.FillGaps(m).String()

		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
			return ""
		}
	})
}
