package recorder

import (
	"context"
	"fmt"
	"time"

	"camrec/internal/capture"
	"camrec/internal/encoder"
	"camrec/internal/logging"
	"camrec/internal/media"
	"camrec/internal/mediaspec"
	"camrec/internal/mux"
)

// session holds the per-recording mutable pieces: the muxer, the track
// registration table, the completion signals, and the counters. Dropping
// the session at finalization resets all of them at once. Only ever
// touched from the sequential execution context.
type session struct {
	active *ActiveRecording

	destination mux.Destination
	outputURI   string
	outputPath  string
	catalogID   int64

	muxer        mux.Muxer
	muxerStarted bool

	// trackIndexes maps a stream to its assigned muxer track; completions
	// exists for every expected stream and resolves at stream end.
	trackIndexes map[media.StreamKind]int
	completions  map[media.StreamKind]*trackCompletion
	firstErr     error

	stats         Stats
	firstVideoPTS time.Duration

	stopping  bool
	finalized bool
}

type trackCompletion struct {
	done bool
	err  error
}

// initializeInternal builds the encoder pipeline. Runs on the sequential
// context; a failure parks the recorder in StateError.
func (r *Recorder) initializeInternal(req SurfaceRequest) {
	r.releasePipeline()
	r.rotation = req.RotationDegrees

	if !r.spec.Muted() {
		rate, err := mediaspec.SelectSampleRate(r.spec.Audio, r.device, r.cfg.Capture.LegacyDevice)
		if err != nil {
			r.onSetupError(fmt.Errorf("select sample rate: %w", err))
			return
		}

		audioCfg := encoder.AudioConfig{
			MimeType:     r.spec.OutputFormat.AudioMimeType(),
			Bitrate:      r.cfg.Recording.AudioBitrate,
			SampleRate:   rate,
			ChannelCount: r.spec.Audio.ChannelCount,
		}
		audioEnc, err := r.audioFactory(audioCfg)
		if err != nil {
			r.onSetupError(fmt.Errorf("configure audio encoder: %w", err))
			return
		}

		bufferRate := rate
		if bufferRate == mediaspec.RateUnspecified {
			bufferRate = mediaspec.DefaultSampleRate
		}
		source, err := r.sourceFactory(capture.SourceConfig{
			Device:       r.cfg.Capture.Device,
			SampleRate:   rate,
			ChannelCount: r.spec.Audio.ChannelCount,
			BufferSize:   r.device.MinBufferSize(bufferRate, r.spec.Audio.ChannelCount),
		})
		if err != nil {
			_ = audioEnc.Release()
			r.onSetupError(fmt.Errorf("open audio source: %w", err))
			return
		}
		r.audioEnc = audioEnc
		r.audioSource = source
	}

	width, height := req.Width, req.Height
	if width <= 0 || height <= 0 {
		width, height = r.spec.Video.Quality.Resolution(r.spec.Video.AspectRatio)
	}
	videoCfg := encoder.VideoConfig{
		MimeType:       r.spec.OutputFormat.VideoMimeType(),
		Width:          width,
		Height:         height,
		Bitrate:        r.cfg.Recording.VideoBitrate,
		FrameRate:      r.cfg.Recording.FrameRate,
		IFrameInterval: r.cfg.Recording.IFrameInterval,
	}
	videoEnc, err := r.videoFactory(videoCfg)
	if err != nil {
		r.releasePipeline()
		r.onSetupError(fmt.Errorf("configure video encoder: %w", err))
		return
	}
	r.videoEnc = videoEnc

	if r.audioEnc != nil {
		r.audioEnc.SetCallback(r.trackCallback(media.StreamAudio), r.exec.Submit)
	}
	r.videoEnc.SetCallback(r.trackCallback(media.StreamVideo), r.exec.Submit)

	r.logger.Info("pipeline initialized", logging.Args(
		logging.String(logging.FieldEventType, "pipeline_initialized"),
		logging.Int("width", width),
		logging.Int("height", height),
		logging.Bool("muted", r.spec.Muted()))...)

	r.onInitialized()
}

func (r *Recorder) trackCallback(kind media.StreamKind) encoder.Callback {
	return encoder.Callback{
		OnOutputConfig: func(format media.TrackFormat) { r.handleOutputConfig(kind, format) },
		OnEncodedData:  func(data media.EncodedData) { r.handleEncodedData(kind, data) },
		OnStop:         func() { r.handleStreamEnd(kind, nil) },
		OnError:        func(err error) { r.handleStreamEnd(kind, err) },
	}
}

// onInitialized moves the recorder out of StateInitializing and starts a
// deferred recording if one queued up during setup.
func (r *Recorder) onInitialized() {
	r.mu.Lock()
	var (
		active        *ActiveRecording
		deferredPause bool
	)
	switch r.state {
	case StateInitializing:
		r.setStateLocked(StateIdling)
	case StatePendingRecording:
		active = r.runningRecording
		r.setStateLocked(StateRecording)
	case StatePendingPaused:
		active = r.runningRecording
		deferredPause = true
		r.setStateLocked(StatePaused)
	default:
		// A release or error raced ahead; nothing to start.
	}
	r.mu.Unlock()

	if active != nil {
		r.startInternal(active)
		if deferredPause {
			r.pauseInternal()
		}
	}
}

// onSetupError records an unrecoverable configuration failure. A pending
// recording waiting on initialization finalizes immediately.
func (r *Recorder) onSetupError(err error) {
	r.logger.Error("recorder setup failed", logging.Args(
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check capture device and encoder configuration"))...)

	r.mu.Lock()
	if r.state == StateReleasing || r.state == StateReleased {
		r.mu.Unlock()
		return
	}
	var pending *ActiveRecording
	if hasRunningRecording(r.state) {
		pending = r.runningRecording
		r.runningRecording = nil
	}
	r.errorCause = err
	r.setStateLocked(StateError)
	r.mu.Unlock()

	if pending != nil {
		pending.notify(FinalizeEvent{
			Output: outputResultFor(pending.output),
			Code:   ErrCodeRecorderGenericError,
			Cause:  err,
		})
	}
}

// startInternal resolves the output destination, opens the muxer, and
// starts the capture source and both encoders.
func (r *Recorder) startInternal(active *ActiveRecording) {
	s := &session{
		active:       active,
		trackIndexes: make(map[media.StreamKind]int),
		completions:  make(map[media.StreamKind]*trackCompletion),
	}
	s.completions[media.StreamVideo] = &trackCompletion{}
	if !r.spec.Muted() {
		s.completions[media.StreamAudio] = &trackCompletion{}
	}
	r.session = s

	if err := r.resolveDestination(s, active.output); err != nil {
		r.finalizeRecording(ErrCodeInvalidOutputOptions, err)
		return
	}

	muxer, err := r.muxerFactory(s.destination, r.spec.OutputFormat)
	if err != nil {
		r.finalizeRecording(ErrCodeInvalidOutputOptions, fmt.Errorf("open muxer: %w", err))
		return
	}
	muxer.SetOrientationHint(r.rotation)
	s.muxer = muxer

	if r.audioSource != nil {
		if err := r.audioSource.Start(); err != nil {
			r.finalizeRecording(ErrCodeEncodingFailed, fmt.Errorf("start audio source: %w", err))
			return
		}
	}
	if r.audioEnc != nil {
		if err := r.audioEnc.Start(); err != nil {
			r.finalizeRecording(ErrCodeEncodingFailed, fmt.Errorf("start audio encoder: %w", err))
			return
		}
	}
	if err := r.videoEnc.Start(); err != nil {
		r.finalizeRecording(ErrCodeEncodingFailed, fmt.Errorf("start video encoder: %w", err))
		return
	}

	r.logger.Info("recording started", logging.Args(
		logging.String(logging.FieldEventType, "recording_started"),
		logging.String(logging.FieldRecordingID, active.id),
		logging.String("output", s.outputPath))...)
	active.notify(StartEvent{Stats: s.stats})
}

func (r *Recorder) resolveDestination(s *session, output mux.OutputOptions) error {
	switch out := output.(type) {
	case mux.FileOutput:
		if out.Path == "" {
			return fmt.Errorf("file output has no path")
		}
		s.destination = mux.Destination{Path: out.Path}
		s.outputPath = out.Path
		return nil

	case mux.FileDescriptorOutput:
		if out.File == nil {
			return fmt.Errorf("file descriptor output has no file")
		}
		s.destination = mux.Destination{File: out.File}
		return nil

	case mux.CatalogOutput:
		if r.catalog == nil {
			return fmt.Errorf("no content catalog configured")
		}
		entry, err := r.catalog.Insert(context.Background(), out.DisplayName, r.spec.OutputFormat.FileExtension())
		if err != nil {
			return fmt.Errorf("insert catalog entry: %w", err)
		}
		if entry == nil {
			return fmt.Errorf("catalog returned no entry")
		}
		s.destination = mux.Destination{Path: entry.Path}
		s.outputPath = entry.Path
		s.outputURI = entry.URI
		s.catalogID = entry.ID
		return nil

	default:
		return fmt.Errorf("unsupported output options %T", output)
	}
}

func (r *Recorder) pauseInternal() {
	s := r.session
	if s == nil || s.finalized {
		return
	}
	if r.audioSource != nil {
		if err := r.audioSource.Stop(); err != nil {
			r.logger.Warn("audio source pause failed", logging.Args(logging.Error(err))...)
		}
	}
	if r.audioEnc != nil {
		if err := r.audioEnc.Pause(); err != nil {
			r.logger.Warn("audio encoder pause failed", logging.Args(logging.Error(err))...)
		}
	}
	if err := r.videoEnc.Pause(); err != nil {
		r.logger.Warn("video encoder pause failed", logging.Args(logging.Error(err))...)
	}
	s.active.notify(PauseEvent{Stats: s.stats})
}

func (r *Recorder) resumeInternal() {
	s := r.session
	if s == nil || s.finalized {
		return
	}
	if r.audioSource != nil {
		if err := r.audioSource.Start(); err != nil {
			r.logger.Warn("audio source resume failed", logging.Args(logging.Error(err))...)
		}
	}
	if r.audioEnc != nil {
		if err := r.audioEnc.Start(); err != nil {
			r.logger.Warn("audio encoder resume failed", logging.Args(logging.Error(err))...)
		}
	}
	if err := r.videoEnc.Start(); err != nil {
		r.logger.Warn("video encoder resume failed", logging.Args(logging.Error(err))...)
	}
	s.active.notify(ResumeEvent{Stats: s.stats})
}

func (r *Recorder) stopInternal() {
	s := r.session
	if s == nil || s.finalized || s.stopping {
		return
	}
	r.stopPipeline(s)
}

// stopPipeline asks the producers to end their streams. The encoders
// report stream end asynchronously; finalization runs once every
// expected track's completion signal resolves.
func (r *Recorder) stopPipeline(s *session) {
	s.stopping = true
	if r.audioSource != nil {
		if err := r.audioSource.Stop(); err != nil {
			r.logger.Warn("audio source stop failed", logging.Args(logging.Error(err))...)
		}
	}
	if r.audioEnc != nil {
		if err := r.audioEnc.Stop(); err != nil {
			r.logger.Warn("audio encoder stop failed", logging.Args(logging.Error(err))...)
		}
	}
	if r.videoEnc != nil {
		if err := r.videoEnc.Stop(); err != nil {
			r.logger.Warn("video encoder stop failed", logging.Args(logging.Error(err))...)
		}
	}
}

// handleOutputConfig registers the announcing stream's muxer track. The
// muxer starts once every expected track is registered.
func (r *Recorder) handleOutputConfig(kind media.StreamKind, format media.TrackFormat) {
	s := r.session
	if s == nil || s.finalized {
		return
	}
	if _, expected := s.completions[kind]; !expected {
		return
	}
	if _, registered := s.trackIndexes[kind]; registered {
		return
	}

	index, err := s.muxer.AddTrack(format)
	if err != nil {
		r.finalizeRecording(ErrCodeInvalidOutputOptions, fmt.Errorf("register %s track: %w", kind, err))
		return
	}
	s.trackIndexes[kind] = index
	r.logger.Debug("track registered", logging.Args(
		logging.String(logging.FieldStream, kind.String()),
		logging.Int("track_index", index))...)

	if len(s.trackIndexes) == len(s.completions) {
		if err := s.muxer.Start(); err != nil {
			r.finalizeRecording(ErrCodeInvalidOutputOptions, fmt.Errorf("start muxer: %w", err))
			return
		}
		s.muxerStarted = true
		r.logger.Debug("muxer started", logging.Args(
			logging.Int("tracks", len(s.trackIndexes)))...)
	}
}

// handleEncodedData writes one chunk through the muxer. Chunks arriving
// between this stream's registration and muxer start are dropped, not
// buffered; that bounds memory at the cost of leading samples.
func (r *Recorder) handleEncodedData(kind media.StreamKind, data media.EncodedData) {
	s := r.session
	if s == nil || s.finalized {
		// Producers drain asynchronously after finalize.
		return
	}
	if _, registered := s.trackIndexes[kind]; !registered {
		if _, expected := s.completions[kind]; !expected {
			return
		}
		panic(fmt.Sprintf("recorder: %s data delivered before its track was registered", kind))
	}
	if !s.muxerStarted {
		r.logger.Debug("dropping chunk before muxer start", logging.Args(
			logging.String(logging.FieldStream, kind.String()),
			logging.Int64("bytes", data.Size()))...)
		return
	}

	if err := s.muxer.WriteSample(s.trackIndexes[kind], data); err != nil {
		r.finalizeRecording(ErrCodeEncodingFailed, fmt.Errorf("write %s sample: %w", kind, err))
		return
	}
	s.stats.Bytes += data.Size()

	if kind == media.StreamVideo {
		if s.firstVideoPTS == 0 {
			s.firstVideoPTS = data.PresentationTime
		}
		if elapsed := data.PresentationTime - s.firstVideoPTS; elapsed > s.stats.Duration {
			s.stats.Duration = elapsed
		}
		s.active.notify(StatusEvent{Stats: s.stats})
	}
}

// handleStreamEnd resolves one track's completion signal. When every
// expected track has resolved, the recording finalizes; the first error
// to resolve wins and classifies the outcome.
func (r *Recorder) handleStreamEnd(kind media.StreamKind, err error) {
	s := r.session
	if s == nil || s.finalized {
		if err != nil {
			r.onSetupError(fmt.Errorf("%s encoder: %w", kind, err))
		}
		return
	}

	completion, expected := s.completions[kind]
	if !expected || completion.done {
		return
	}
	completion.done = true
	completion.err = err

	if err != nil {
		if s.firstErr == nil {
			s.firstErr = fmt.Errorf("%s encoder: %w", kind, err)
		}
		if !s.stopping {
			r.stopPipeline(s)
		}
	}

	for _, c := range s.completions {
		if !c.done {
			return
		}
	}

	code := ErrCodeNone
	if s.firstErr != nil {
		code = ErrCodeEncodingFailed
	}
	r.finalizeRecording(code, s.firstErr)
}

// finalizeRecording is the single teardown path for every outcome. It
// emits the terminal event, releases the muxer, resets the per-recording
// tables and counters, and returns the recorder to idle or completes a
// pending release. It must run exactly once per recording.
func (r *Recorder) finalizeRecording(code ErrorCode, cause error) {
	s := r.session
	if s == nil {
		return
	}
	if s.finalized {
		panic("recorder: recording finalized twice")
	}
	s.finalized = true

	if !s.stopping {
		r.stopPipeline(s)
	}

	if s.muxer != nil {
		if s.muxerStarted {
			if err := s.muxer.Stop(); err != nil {
				r.logger.Error("muxer stop failed", logging.Args(logging.Error(err))...)
				if code == ErrCodeNone {
					code = ErrCodeRecorderGenericError
					cause = fmt.Errorf("stop muxer: %w", err)
				}
			}
		}
		if err := s.muxer.Release(); err != nil {
			r.logger.Error("muxer release failed", logging.Args(logging.Error(err))...)
			if code == ErrCodeNone {
				code = ErrCodeRecorderGenericError
				cause = fmt.Errorf("release muxer: %w", err)
			}
		}
	}

	if s.catalogID != 0 && r.catalog != nil {
		message := ""
		if cause != nil {
			message = cause.Error()
		}
		if err := r.catalog.Finalize(context.Background(), s.catalogID, s.stats.Bytes, s.stats.Duration, message); err != nil {
			r.logger.Warn("catalog finalize failed", logging.Args(logging.Error(err))...)
		}
	}

	r.logger.Info("recording finalized", logging.Args(
		logging.String(logging.FieldEventType, "recording_finalized"),
		logging.String(logging.FieldRecordingID, s.active.id),
		logging.String("code", code.String()),
		logging.Int64("bytes", s.stats.Bytes),
		logging.Duration("duration", s.stats.Duration))...)

	s.active.notify(FinalizeEvent{
		Stats:  s.stats,
		Output: OutputResult{URI: s.outputURI, Path: s.outputPath},
		Code:   code,
		Cause:  cause,
	})

	// Dropping the session resets the track table and counters.
	r.session = nil

	r.mu.Lock()
	if r.runningRecording == s.active {
		r.runningRecording = nil
	}
	releasing := r.state == StateReleasing
	if !releasing {
		r.setStateLocked(StateIdling)
	}
	r.mu.Unlock()

	if releasing {
		r.releaseInternal()
	}
}

// releaseInternal frees the pipeline and terminates the recorder. The
// executor drains its remaining queue and exits.
func (r *Recorder) releaseInternal() {
	r.releasePipeline()
	r.mu.Lock()
	r.setStateLocked(StateReleased)
	r.mu.Unlock()
	r.exec.close()
}

func (r *Recorder) releasePipeline() {
	if r.audioSource != nil {
		if err := r.audioSource.Release(); err != nil {
			r.logger.Warn("audio source release failed", logging.Args(logging.Error(err))...)
		}
		r.audioSource = nil
	}
	if r.audioEnc != nil {
		if err := r.audioEnc.Release(); err != nil {
			r.logger.Warn("audio encoder release failed", logging.Args(logging.Error(err))...)
		}
		r.audioEnc = nil
	}
	if r.videoEnc != nil {
		if err := r.videoEnc.Release(); err != nil {
			r.logger.Warn("video encoder release failed", logging.Args(logging.Error(err))...)
		}
		r.videoEnc = nil
	}
}
