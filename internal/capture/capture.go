package capture

import "fmt"

// Source produces raw audio sample buffers for the audio encoder engine.
// The recorder owns the source exclusively and drives its lifecycle from
// the sequential execution context.
type Source interface {
	Start() error
	Stop() error
	Release() error
}

// SourceConfig carries the parameters a source factory needs to open the
// capture device. A SampleRate of 0 requests the device's native rate.
type SourceConfig struct {
	Device       string
	SampleRate   int
	ChannelCount int
	BufferSize   int
}

// SourceFactory opens a capture source for the given configuration.
type SourceFactory func(SourceConfig) (Source, error)

// Device probes capture capabilities. MinBufferSize returns the minimum
// buffer size in bytes for the given rate and channel count, or a value
// <= 0 when the combination is not supported.
type Device interface {
	MinBufferSize(sampleRate, channelCount int) int
}

// AccessError indicates the capture device could not be opened.
type AccessError struct {
	Device string
	Err    error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("audio source %s: %v", e.Device, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
