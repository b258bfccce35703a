package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType is the standardized structured logging key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance on failures.
	FieldErrorHint = "error_hint"
	// FieldRecordingID is the standardized structured logging key for recording session identifiers.
	FieldRecordingID = "recording_id"
	// FieldStream is the standardized structured logging key for stream kinds (audio/video).
	FieldStream = "stream"
	// FieldState is the standardized structured logging key for recorder lifecycle states.
	FieldState = "state"
)
