package recorder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"camrec/internal/capture"
	"camrec/internal/catalog"
	"camrec/internal/config"
	"camrec/internal/encoder"
	"camrec/internal/logging"
	"camrec/internal/mediaspec"
	"camrec/internal/mux"
)

// ContentStore is the catalog surface the recorder needs to resolve and
// finalize CatalogOutput destinations. *catalog.Store satisfies it.
type ContentStore interface {
	Insert(ctx context.Context, displayName, container string) (*catalog.Entry, error)
	Finalize(ctx context.Context, id int64, bytes int64, duration time.Duration, errMessage string) error
}

// SurfaceRequest describes the video source feeding the recorder. Zero
// dimensions fall back to the resolution the quality selector implies.
type SurfaceRequest struct {
	Width           int
	Height          int
	RotationDegrees int
}

// Options carries everything a Recorder needs. Config, Device, and the
// four factories are required; Catalog and Logger are optional.
type Options struct {
	Config        *config.Config
	Logger        *slog.Logger
	Spec          mediaspec.MediaSpec
	Device        capture.Device
	SourceFactory capture.SourceFactory
	AudioFactory  encoder.AudioFactory
	VideoFactory  encoder.VideoFactory
	MuxerFactory  mux.Factory
	Catalog       ContentStore
}

// Recorder orchestrates one audio encoder, one video encoder, and one
// muxer per recording. Public calls are non-blocking: they update state
// under a short-lived lock and enqueue at most one task onto the
// sequential execution context, where all side effects run in order.
type Recorder struct {
	logger *slog.Logger
	cfg    *config.Config
	spec   mediaspec.MediaSpec

	device        capture.Device
	sourceFactory capture.SourceFactory
	audioFactory  encoder.AudioFactory
	videoFactory  encoder.VideoFactory
	muxerFactory  mux.Factory
	catalog       ContentStore

	exec *executor

	mu               sync.Mutex
	state            State
	errorCause       error
	runningRecording *ActiveRecording
	surface          *SurfaceRequest

	stateObs  *Observable[State]
	streamObs *Observable[StreamState]

	// Pipeline resources, touched only from the sequential context.
	audioEnc    encoder.Encoder
	videoEnc    encoder.Encoder
	audioSource capture.Source
	rotation    int
	session     *session
}

// New builds a Recorder in StateInitializing. The spec's auto fields are
// resolved from the [recording] config section immediately and never
// change afterwards.
func New(opts Options) (*Recorder, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Device == nil {
		return nil, errors.New("capture device is required")
	}
	if opts.SourceFactory == nil || opts.AudioFactory == nil || opts.VideoFactory == nil || opts.MuxerFactory == nil {
		return nil, errors.New("source, encoder, and muxer factories are required")
	}

	defaults, err := mediaspec.DefaultsFromConfig(opts.Config.Recording)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		logger:        logging.NewComponentLogger(opts.Logger, "recorder"),
		cfg:           opts.Config,
		spec:          mediaspec.Resolve(opts.Spec, defaults),
		device:        opts.Device,
		sourceFactory: opts.SourceFactory,
		audioFactory:  opts.AudioFactory,
		videoFactory:  opts.VideoFactory,
		muxerFactory:  opts.MuxerFactory,
		catalog:       opts.Catalog,
		exec:          newExecutor(),
		state:         StateInitializing,
		stateObs:      newObservable(StateInitializing),
		streamObs:     newObservable(StreamInactive),
	}
	return r, nil
}

// Spec returns the resolved media spec. Read-only after construction.
func (r *Recorder) Spec() mediaspec.MediaSpec { return r.spec }

// State returns the current lifecycle state.
func (r *Recorder) State() State { return r.stateObs.Get() }

// ObserveState watches lifecycle transitions. The observer runs on the
// goroutine performing the transition and must not call back into the
// recorder.
func (r *Recorder) ObserveState(fn func(State)) (cancel func()) {
	return r.stateObs.Observe(fn)
}

// StreamState returns the coarse Active/Inactive output projection.
func (r *Recorder) StreamState() StreamState { return r.streamObs.Get() }

// ObserveStreamState watches the Active/Inactive projection. The same
// reentrancy constraint as ObserveState applies.
func (r *Recorder) ObserveStreamState(fn func(StreamState)) (cancel func()) {
	return r.streamObs.Observe(fn)
}

// Initialize supplies the video source and kicks off asynchronous encoder
// setup. The recorder stays in StateInitializing until setup completes.
func (r *Recorder) Initialize(req SurfaceRequest) error {
	r.mu.Lock()
	if r.state == StateReleasing || r.state == StateReleased {
		r.mu.Unlock()
		return ErrReleased
	}
	r.surface = &req
	r.mu.Unlock()

	r.exec.Submit(func() { r.initializeInternal(req) })
	return nil
}

// PrepareRecording binds an output destination without starting anything.
func (r *Recorder) PrepareRecording(output mux.OutputOptions) (*PendingRecording, error) {
	if output == nil {
		return nil, errors.New("output options are required")
	}
	r.mu.Lock()
	state := r.state
	r.mu.Unlock()
	if state == StateReleasing || state == StateReleased {
		return nil, ErrReleased
	}
	return &PendingRecording{recorder: r, output: output}, nil
}

// Release tears the recorder down. Always accepted; an active recording
// is stopped first and its finalization completes the teardown.
func (r *Recorder) Release() {
	r.mu.Lock()
	switch r.state {
	case StateReleasing, StateReleased:
		r.mu.Unlock()

	case StateRecording, StatePaused:
		// Finalization sees Releasing and performs the full teardown.
		r.setStateLocked(StateReleasing)
		r.mu.Unlock()
		r.exec.Submit(func() { r.stopInternal() })

	case StatePendingRecording, StatePendingPaused:
		active := r.runningRecording
		r.runningRecording = nil
		r.setStateLocked(StateReleasing)
		r.mu.Unlock()
		r.exec.Submit(func() {
			active.notify(FinalizeEvent{
				Output: outputResultFor(active.output),
				Code:   ErrCodeRecorderUninitialized,
				Cause:  errors.New("recorder released before initialization completed"),
			})
			r.releaseInternal()
		})

	default:
		r.setStateLocked(StateReleasing)
		r.mu.Unlock()
		r.exec.Submit(func() { r.releaseInternal() })
	}
}

func (r *Recorder) start(p *PendingRecording) (*ActiveRecording, error) {
	r.mu.Lock()
	switch r.state {
	case StateReleasing, StateReleased:
		r.mu.Unlock()
		return nil, ErrReleased

	case StatePendingRecording, StatePendingPaused, StateRecording, StatePaused:
		r.mu.Unlock()
		return nil, ErrAlreadyActive

	case StateInitializing:
		// Deferred until setup completes.
		active := newActiveRecording(r, p)
		r.runningRecording = active
		r.setStateLocked(StatePendingRecording)
		r.mu.Unlock()
		return active, nil

	case StateIdling:
		active := newActiveRecording(r, p)
		r.runningRecording = active
		r.setStateLocked(StateRecording)
		r.mu.Unlock()
		r.exec.Submit(func() { r.startInternal(active) })
		return active, nil

	case StateError:
		// The attempt finalizes immediately with the recorded cause and
		// the recorder resets for a fresh initialization.
		active := newActiveRecording(r, p)
		cause := r.errorCause
		r.errorCause = nil
		r.setStateLocked(StateInitializing)
		surface := r.surface
		r.mu.Unlock()
		r.exec.Submit(func() {
			active.notify(FinalizeEvent{
				Output: outputResultFor(active.output),
				Code:   ErrCodeRecorderGenericError,
				Cause:  cause,
			})
		})
		if surface != nil {
			req := *surface
			r.exec.Submit(func() { r.initializeInternal(req) })
		}
		return active, nil

	default:
		r.mu.Unlock()
		return nil, ErrInvalidOperation
	}
}

func (r *Recorder) pause(a *ActiveRecording) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runningRecording != a {
		return ErrInvalidOperation
	}
	switch r.state {
	case StatePendingRecording:
		r.setStateLocked(StatePendingPaused)
		return nil
	case StatePendingPaused, StatePaused:
		return nil
	case StateRecording:
		r.setStateLocked(StatePaused)
		r.exec.Submit(func() { r.pauseInternal() })
		return nil
	case StateReleasing, StateReleased:
		return ErrReleased
	default:
		return ErrInvalidOperation
	}
}

func (r *Recorder) resume(a *ActiveRecording) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runningRecording != a {
		return ErrInvalidOperation
	}
	switch r.state {
	case StatePendingPaused:
		r.setStateLocked(StatePendingRecording)
		return nil
	case StatePendingRecording, StateRecording:
		return nil
	case StatePaused:
		r.setStateLocked(StateRecording)
		r.exec.Submit(func() { r.resumeInternal() })
		return nil
	case StateReleasing, StateReleased:
		return ErrReleased
	default:
		return ErrInvalidOperation
	}
}

func (r *Recorder) stop(a *ActiveRecording) error {
	r.mu.Lock()
	if r.runningRecording != a {
		// Already finalized; stop is idempotent.
		r.mu.Unlock()
		return nil
	}
	switch r.state {
	case StatePendingRecording, StatePendingPaused:
		// Initialization never completed for this recording.
		r.runningRecording = nil
		r.setStateLocked(StateInitializing)
		r.mu.Unlock()
		r.exec.Submit(func() {
			a.notify(FinalizeEvent{
				Output: outputResultFor(a.output),
				Code:   ErrCodeRecorderUninitialized,
				Cause:  errors.New("recording stopped before initialization completed"),
			})
		})

	case StateRecording, StatePaused:
		r.mu.Unlock()
		r.exec.Submit(func() { r.stopInternal() })

	default:
		// Releasing already implies a stop.
		r.mu.Unlock()
	}
	return nil
}

// setStateLocked is the single transition point. Callers hold r.mu.
func (r *Recorder) setStateLocked(next State) {
	if r.state == next {
		return
	}
	prev := r.state
	r.state = next
	r.logger.Debug("state transition", logging.Args(
		logging.String(logging.FieldEventType, "recorder_state"),
		logging.String("from", prev.String()),
		logging.String(logging.FieldState, next.String()))...)
	r.stateObs.set(next)
	if next == StateRecording {
		r.streamObs.set(StreamActive)
	} else {
		r.streamObs.set(StreamInactive)
	}
}

func outputResultFor(output mux.OutputOptions) OutputResult {
	if f, ok := output.(mux.FileOutput); ok {
		return OutputResult{Path: f.Path}
	}
	return OutputResult{}
}
