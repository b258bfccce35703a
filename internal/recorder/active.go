package recorder

import (
	"github.com/google/uuid"

	"camrec/internal/mux"
)

// ActiveRecording is the live handle for one started, not yet finalized
// recording. The recorder clears its own reference at finalization; the
// caller's handle then becomes inert.
type ActiveRecording struct {
	recorder *Recorder
	id       string
	output   mux.OutputOptions
	listener func(Event)
}

func newActiveRecording(r *Recorder, p *PendingRecording) *ActiveRecording {
	return &ActiveRecording{
		recorder: r,
		id:       uuid.NewString(),
		output:   p.output,
		listener: p.listener,
	}
}

// ID returns the session identifier, stable for the recording's lifetime.
func (a *ActiveRecording) ID() string { return a.id }

// Pause suspends the recording. Pausing a paused or pending-paused
// recording is a no-op.
func (a *ActiveRecording) Pause() error { return a.recorder.pause(a) }

// Resume continues a paused recording. Resuming a recording that is
// already running is a no-op.
func (a *ActiveRecording) Resume() error { return a.recorder.resume(a) }

// Stop ends the recording and triggers finalization. Stopping an already
// finalized recording is a no-op.
func (a *ActiveRecording) Stop() error { return a.recorder.stop(a) }

// notify delivers one event to the registered listener. Always invoked
// from the recorder's sequential execution context.
func (a *ActiveRecording) notify(ev Event) {
	if a.listener != nil {
		a.listener(ev)
	}
}
