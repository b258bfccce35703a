package recorder

import (
	"sync/atomic"

	"camrec/internal/mux"
)

// PendingRecording binds an output destination to the recorder without
// starting it. It is consumed exactly once by Start, which hands back the
// live ActiveRecording; afterwards the pending handle is inert.
type PendingRecording struct {
	recorder *Recorder
	output   mux.OutputOptions
	listener func(Event)
	consumed atomic.Bool
}

// WithListener registers the single event listener for the recording this
// handle will start. It returns the handle for chaining.
func (p *PendingRecording) WithListener(fn func(Event)) *PendingRecording {
	p.listener = fn
	return p
}

// Start hands the pending recording to the recorder. It fails if a
// recording is already active, if the recorder is released, or if this
// handle was already consumed.
func (p *PendingRecording) Start() (*ActiveRecording, error) {
	if !p.consumed.CompareAndSwap(false, true) {
		return nil, ErrAlreadyConsumed
	}
	return p.recorder.start(p)
}
