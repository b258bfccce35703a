package recorder

// State is the authoritative recorder lifecycle value. It is mutated only
// through setState while holding the recorder's state lock.
type State int

const (
	// StateInitializing means encoder setup has not completed yet.
	StateInitializing State = iota
	// StatePendingRecording means a start arrived during initialization
	// and is deferred until setup completes.
	StatePendingRecording
	// StatePendingPaused is StatePendingRecording with a deferred pause.
	StatePendingPaused
	// StateIdling means the pipeline is ready and no recording is active.
	StateIdling
	// StateRecording means an active recording is producing output.
	StateRecording
	// StatePaused means an active recording is suspended.
	StatePaused
	// StateReleasing means teardown has begun; no new work is accepted.
	StateReleasing
	// StateReleased is terminal; all resources are gone.
	StateReleased
	// StateError means setup failed; the next recording operation
	// finalizes immediately and resets the recorder.
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StatePendingRecording:
		return "pending_recording"
	case StatePendingPaused:
		return "pending_paused"
	case StateIdling:
		return "idling"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateReleasing:
		return "releasing"
	case StateReleased:
		return "released"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// StreamState is the coarse Active/Inactive projection for consumers that
// only care whether output is flowing.
type StreamState int

const (
	StreamInactive StreamState = iota
	StreamActive
)

func (s StreamState) String() string {
	if s == StreamActive {
		return "active"
	}
	return "inactive"
}

// hasRunningRecording reports whether the state implies a live
// ActiveRecording reference.
func hasRunningRecording(s State) bool {
	switch s {
	case StatePendingRecording, StatePendingPaused, StateRecording, StatePaused:
		return true
	default:
		return false
	}
}
