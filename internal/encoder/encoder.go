package encoder

import "camrec/internal/media"

// Encoder is one codec engine owned by the recorder. Lifecycle calls are
// only ever issued from the recorder's sequential execution context, never
// concurrently with each other.
//
// Start on a paused encoder resumes it.
type Encoder interface {
	Start() error
	Pause() error
	Stop() error
	Release() error

	// SetCallback registers the event sink. Every callback is invoked via
	// exec, which the recorder points at its sequential execution context.
	SetCallback(cb Callback, exec func(func()))
}

// Callback is the closed event set an engine emits. Any nil field is a no-op.
type Callback struct {
	// OnStart fires when the engine begins producing output.
	OnStart func()
	// OnOutputConfig fires once the engine has negotiated its output
	// format. The recorder registers the muxer track from it.
	OnOutputConfig func(media.TrackFormat)
	// OnEncodedData delivers one compressed chunk.
	OnEncodedData func(media.EncodedData)
	// OnStop fires after the stream has ended cleanly.
	OnStop func()
	// OnError reports a fatal engine failure; no further events follow.
	OnError func(error)
}

// AudioFactory opens an audio engine for the given configuration.
type AudioFactory func(AudioConfig) (Encoder, error)

// VideoFactory opens a video engine for the given configuration.
type VideoFactory func(VideoConfig) (Encoder, error)
