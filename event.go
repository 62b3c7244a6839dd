// Copyright 2026 The Epochs Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package epochs

import (
	"time"

	"github.com/cockroachdb/redact"
)

// ArtifactsDetectedInfo contains the info for an artifact detection event.
type ArtifactsDetectedInfo struct {
	// Params is the parameterization the detector ran with.
	Params DetectParams
	// Epochs is the number of artifact epochs the detector produced.
	Epochs int
	// TotalDuration is the summed duration of the detected epochs, in
	// seconds of recording time.
	TotalDuration float64
	// Duration is the wall time the detection took.
	Duration time.Duration
	// Err is set if the detection failed.
	Err error
}

func (i ArtifactsDetectedInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i ArtifactsDetectedInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	if i.Err != nil {
		w.Printf("artifact detection error: %s", i.Err)
		return
	}
	w.Printf("detected %d artifact epochs (%gs of signal, threshold %g) in %.2fs",
		redact.Safe(i.Epochs), redact.Safe(i.TotalDuration),
		redact.Safe(i.Params.Threshold), redact.Safe(i.Duration.Seconds()))
}

// EpochsCombinedInfo contains the info for an epoch combine event.
type EpochsCombinedInfo struct {
	// Input and Output are the collection sizes before and after combining.
	Input, Output int
	// Regions is the number of distinct covered timeline regions in the
	// output.
	Regions int
	// Buffer is the padding that was applied before combining.
	Buffer Buffer
	// Duration is the wall time the combine took.
	Duration time.Duration
}

func (i EpochsCombinedInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i EpochsCombinedInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("combined %d epochs into %d (%d regions, buffer %g/%g) in %.2fs",
		redact.Safe(i.Input), redact.Safe(i.Output), redact.Safe(i.Regions),
		redact.Safe(i.Buffer.Before), redact.Safe(i.Buffer.After),
		redact.Safe(i.Duration.Seconds()))
}

// EpochsWrittenInfo contains the info for an epoch write event.
type EpochsWrittenInfo struct {
	// WriterIndex identifies the writer, in the order the writers were
	// passed to NewCleaner.
	WriterIndex int
	// Epochs is the number of epochs handed to the writer.
	Epochs int
	// Duration is the wall time the write took.
	Duration time.Duration
	// Err is set if the write failed.
	Err error
}

func (i EpochsWrittenInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i EpochsWrittenInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	if i.Err != nil {
		w.Printf("writer %d error: %s", redact.Safe(i.WriterIndex), i.Err)
		return
	}
	w.Printf("writer %d wrote %d epochs in %.2fs",
		redact.Safe(i.WriterIndex), redact.Safe(i.Epochs),
		redact.Safe(i.Duration.Seconds()))
}

// EventListener contains a set of functions that will be invoked when various
// significant cleaner events occur. Note that the functions should not run
// for an excessive amount of time as they are invoked synchronously by the
// cleaner and may block continued work.
type EventListener struct {
	// ArtifactsDetected is invoked after the detector returns, whether or
	// not it succeeded.
	ArtifactsDetected func(ArtifactsDetectedInfo)

	// EpochsCombined is invoked after the detected epochs have been padded
	// and combined.
	EpochsCombined func(EpochsCombinedInfo)

	// EpochsWritten is invoked after each writer returns, whether or not it
	// succeeded.
	EpochsWritten func(EpochsWrittenInfo)
}

// EnsureDefaults ensures that failure events are logged to the specified
// logger if a handler for those events hasn't been otherwise specified.
// Ensure all handlers are non-nil so that we don't have to check for
// nil-ness before invoking.
func (l *EventListener) EnsureDefaults(logger Logger) {
	if l.ArtifactsDetected == nil {
		if logger != nil {
			l.ArtifactsDetected = func(info ArtifactsDetectedInfo) {
				if info.Err != nil {
					logger.Infof("%s", info)
				}
			}
		} else {
			l.ArtifactsDetected = func(info ArtifactsDetectedInfo) {}
		}
	}
	if l.EpochsCombined == nil {
		l.EpochsCombined = func(info EpochsCombinedInfo) {}
	}
	if l.EpochsWritten == nil {
		if logger != nil {
			l.EpochsWritten = func(info EpochsWrittenInfo) {
				if info.Err != nil {
					logger.Infof("%s", info)
				}
			}
		} else {
			l.EpochsWritten = func(info EpochsWrittenInfo) {}
		}
	}
}

// MakeLoggingEventListener creates an EventListener that logs all events to
// the specified logger.
func MakeLoggingEventListener(logger Logger) EventListener {
	if logger == nil {
		logger = DefaultLogger{}
	}
	return EventListener{
		ArtifactsDetected: func(info ArtifactsDetectedInfo) {
			logger.Infof("%s", info)
		},
		EpochsCombined: func(info EpochsCombinedInfo) {
			logger.Infof("%s", info)
		},
		EpochsWritten: func(info EpochsWrittenInfo) {
			logger.Infof("%s", info)
		},
	}
}

// TeeEventListener wraps two EventListeners, forwarding all events to both.
func TeeEventListener(a, b EventListener) EventListener {
	a.EnsureDefaults(nil)
	b.EnsureDefaults(nil)
	return EventListener{
		ArtifactsDetected: func(info ArtifactsDetectedInfo) {
			a.ArtifactsDetected(info)
			b.ArtifactsDetected(info)
		},
		EpochsCombined: func(info EpochsCombinedInfo) {
			a.EpochsCombined(info)
			b.EpochsCombined(info)
		},
		EpochsWritten: func(info EpochsWrittenInfo) {
			a.EpochsWritten(info)
			b.EpochsWritten(info)
		},
	}
}
