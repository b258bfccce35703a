package recorder

// ErrorCode classifies a finalized recording's outcome. These are the only
// externally visible failure classes; the underlying cause rides along as
// an opaque error.
type ErrorCode int

const (
	// ErrCodeNone marks a successful finalize.
	ErrCodeNone ErrorCode = iota
	// ErrCodeRecorderUninitialized means the recording was stopped or
	// released before the pipeline finished initializing.
	ErrCodeRecorderUninitialized
	// ErrCodeRecorderGenericError covers setup failures surfaced when a
	// recording operation hits an errored recorder.
	ErrCodeRecorderGenericError
	// ErrCodeInvalidOutputOptions means the output destination could not
	// be resolved or opened.
	ErrCodeInvalidOutputOptions
	// ErrCodeEncodingFailed means an encoder reported a fatal failure.
	ErrCodeEncodingFailed
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeNone:
		return "none"
	case ErrCodeRecorderUninitialized:
		return "recorder_uninitialized"
	case ErrCodeRecorderGenericError:
		return "recorder_error"
	case ErrCodeInvalidOutputOptions:
		return "invalid_output_options"
	case ErrCodeEncodingFailed:
		return "encoding_failed"
	default:
		return "unknown"
	}
}

// OutputResult locates the recording's output after it finalizes.
type OutputResult struct {
	// URI identifies a catalog entry, when the recording targeted one.
	URI string
	// Path is the filesystem location, when one is known.
	Path string
}

// Event is a lifecycle notification delivered to the active recording's
// listener. The concrete variants are StartEvent, PauseEvent, ResumeEvent,
// StatusEvent, and FinalizeEvent.
type Event interface {
	// RecordingStats returns the counters at the time of the event.
	RecordingStats() Stats
}

// StartEvent fires once the recording begins producing output.
type StartEvent struct {
	Stats Stats
}

// PauseEvent fires when the recording suspends.
type PauseEvent struct {
	Stats Stats
}

// ResumeEvent fires when a paused recording continues.
type ResumeEvent struct {
	Stats Stats
}

// StatusEvent fires periodically while output flows.
type StatusEvent struct {
	Stats Stats
}

// FinalizeEvent is the terminal event, emitted exactly once per recording.
// Code is ErrCodeNone on success; otherwise Cause carries the failure.
type FinalizeEvent struct {
	Stats  Stats
	Output OutputResult
	Code   ErrorCode
	Cause  error
}

func (e StartEvent) RecordingStats() Stats    { return e.Stats }
func (e PauseEvent) RecordingStats() Stats    { return e.Stats }
func (e ResumeEvent) RecordingStats() Stats   { return e.Stats }
func (e StatusEvent) RecordingStats() Stats   { return e.Stats }
func (e FinalizeEvent) RecordingStats() Stats { return e.Stats }
