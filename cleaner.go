// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"context"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
)

// DetectParams parameterizes an artifact detector.
type DetectParams struct {
	// Threshold is the primary detection threshold, in z-scored amplitude
	// units.
	Threshold float64

	// EdgeCutoff is the secondary threshold used to extend each detection
	// outward until the signal settles back toward baseline.
	EdgeCutoff float64

	// MergeDistance is the distance, in seconds, under which the detector
	// coalesces neighboring detections before returning them.
	MergeDistance float64
}

// Detector produces artifact epochs from a recording. Implementations wrap
// whatever signal access they need; the cleaner only sees the resulting
// collection.
type Detector interface {
	DetectArtifacts(ctx context.Context, params DetectParams) (Collection, error)
}

// Writer persists a cleaned collection. Implementations adapt consumer
// formats such as event files or dead-time lists.
type Writer interface {
	WriteEpochs(ctx context.Context, c Collection) error
}

// CleanerOptions holds the parameters and hooks for a Cleaner.
type CleanerOptions struct {
	// Params is handed to the detector.
	Params DetectParams

	// Buffer pads every detected epoch before combining. The default is no
	// padding.
	Buffer Buffer

	// Logger is used for cleaner messages. The default is DefaultLogger.
	Logger Logger

	// EventListener provides hooks for significant cleaner events.
	EventListener *EventListener
}

// EnsureDefaults ensures that the default values for all options are set if
// a valid value was not already specified. Returns the options for chaining.
func (o *CleanerOptions) EnsureDefaults() *CleanerOptions {
	if o.Params.Threshold == 0 {
		o.Params.Threshold = 4
	}
	if o.Params.EdgeCutoff == 0 {
		o.Params.EdgeCutoff = 2
	}
	if o.Params.MergeDistance == 0 {
		o.Params.MergeDistance = 5
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	if o.EventListener == nil {
		o.EventListener = &EventListener{}
	}
	o.EventListener.EnsureDefaults(o.Logger)
	return o
}

// AddEventListener adds the provided event listener to the options, in
// addition to any existing event listener.
func (o *CleanerOptions) AddEventListener(l EventListener) {
	if o.EventListener != nil {
		l = TeeEventListener(l, *o.EventListener)
	}
	o.EventListener = &l
}

// Cleaner runs the artifact cleaning pipeline: detect artifact epochs, pad
// them, combine overlapping detections, and fan the cleaned collection out
// to the writers.
type Cleaner struct {
	opts     CleanerOptions
	detector Detector
	writers  []Writer
}

// NewCleaner creates a Cleaner from the given detector and writers. The
// options are copied; mutating them afterwards has no effect on the cleaner.
func NewCleaner(opts CleanerOptions, detector Detector, writers ...Writer) (*Cleaner, error) {
	if detector == nil {
		return nil, errors.Newf("epochs: cleaner requires a detector")
	}
	opts.EnsureDefaults()
	return &Cleaner{
		opts:     opts,
		detector: detector,
		writers:  writers,
	}, nil
}

// Run executes the pipeline and returns the cleaned collection. A detection
// failure aborts the run. Writer failures do not: every writer is attempted
// and the failures are combined into the returned error, alongside the
// collection that was handed to them.
func (c *Cleaner) Run(ctx context.Context) (Collection, error) {
	detectStart := crtime.NowMono()
	detected, err := c.detector.DetectArtifacts(ctx, c.opts.Params)
	c.opts.EventListener.ArtifactsDetected(ArtifactsDetectedInfo{
		Params:        c.opts.Params,
		Epochs:        detected.Len(),
		TotalDuration: detected.TotalDuration(),
		Duration:      detectStart.Elapsed(),
		Err:           err,
	})
	if err != nil {
		return nil, errors.Wrap(err, "epochs: detecting artifacts")
	}

	combineStart := crtime.NowMono()
	cleaned := detected.Expanded(c.opts.Buffer)
	cleaned.CombineInPlace()
	var tl Timeline
	tl.Init()
	tl.AddCollection(cleaned)
	c.opts.EventListener.EpochsCombined(EpochsCombinedInfo{
		Input:    detected.Len(),
		Output:   cleaned.Len(),
		Regions:  tl.Len(),
		Buffer:   c.opts.Buffer,
		Duration: combineStart.Elapsed(),
	})

	var writeErr error
	for i := range c.writers {
		if err := ctx.Err(); err != nil {
			return cleaned, errors.CombineErrors(writeErr, err)
		}
		writeStart := crtime.NowMono()
		err := c.writers[i].WriteEpochs(ctx, cleaned)
		c.opts.EventListener.EpochsWritten(EpochsWrittenInfo{
			WriterIndex: i,
			Epochs:      cleaned.Len(),
			Duration:    writeStart.Elapsed(),
			Err:         err,
		})
		writeErr = errors.CombineErrors(writeErr, err)
	}
	return cleaned, writeErr
}
