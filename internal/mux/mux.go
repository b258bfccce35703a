package mux

import (
	"os"

	"camrec/internal/media"
)

// Muxer interleaves encoded tracks into one output. It is owned by a
// single recording: created at start, released exactly once at finalize.
// All calls are issued from the recorder's sequential execution context.
type Muxer interface {
	// AddTrack registers a stream and returns its track index. A track may
	// be added only before Start.
	AddTrack(format media.TrackFormat) (int, error)
	// SetOrientationHint records the display rotation in degrees. Only
	// effective before Start.
	SetOrientationHint(degrees int)
	// Start makes the muxer writable. All expected tracks must be added.
	Start() error
	WriteSample(trackIndex int, data media.EncodedData) error
	// Stop finishes the output after the last sample.
	Stop() error
	// Release closes the underlying resource.
	Release() error
}

// Destination is a resolved writable sink for one recording.
// Exactly one field is set.
type Destination struct {
	Path string
	File *os.File
}

// Factory opens a muxer for a resolved destination and container format.
type Factory func(dst Destination, format media.Format) (Muxer, error)
