// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"strings"

	"github.com/cockroachdb/redact"
	"github.com/ephyslab/epochs/internal/strparse"
)

// String implements fmt.Stringer, returning the epoch in the form
// "[start, stop) label", with the label omitted when empty.
func (e Epoch) String() string {
	return redact.StringWithoutMarkers(e)
}

// SafeFormat implements redact.SafeFormatter. Boundaries are safe; the label
// is user data and is redactable.
func (e Epoch) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("[%g, %g)", redact.Safe(e.Start), redact.Safe(e.Stop))
	if e.Label != "" {
		w.Printf(" %s", e.Label)
	}
}

// String returns the epochs one per line, or "<empty>" for an empty
// collection.
func (c Collection) String() string {
	if len(c) == 0 {
		return "<empty>"
	}
	var buf strings.Builder
	for i, e := range c {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.String())
	}
	return buf.String()
}

// SafeFormat implements redact.SafeFormatter. It prints a summary of the
// collection rather than the full listing.
func (c Collection) SafeFormat(w redact.SafePrinter, _ rune) {
	if len(c) == 0 {
		w.SafeString("0 epochs")
		return
	}
	start, stop := c.Bounds()
	w.Printf("%d epochs spanning [%g, %g)",
		redact.Safe(len(c)), redact.Safe(start), redact.Safe(stop))
}

// ParseEpoch parses the string representation of an epoch, as produced by
// Epoch.String. It's intended for tests and panics on malformed input.
func ParseEpoch(s string) Epoch {
	p := strparse.MakeParser("[,)", s)
	e := parseEpoch(&p)
	if !p.Done() {
		p.Errf("unexpected trailing input %q", p.Remaining())
	}
	return e
}

// ParseCollection parses a whitespace-separated sequence of epochs, as
// produced by Collection.String. The input order is preserved; the result is
// not sorted. Intended for tests; panics on malformed input.
func ParseCollection(s string) Collection {
	p := strparse.MakeParser("[,)", s)
	var c Collection
	for !p.Done() {
		c = append(c, parseEpoch(&p))
	}
	return c
}

func parseEpoch(p *strparse.Parser) Epoch {
	var e Epoch
	p.Expect("[")
	e.Start = p.Float64()
	p.Expect(",")
	e.Stop = p.Float64()
	p.Expect(")")
	if !p.Done() && p.Peek() != "[" {
		e.Label = p.Next()
	}
	return e
}
