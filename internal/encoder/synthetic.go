package encoder

import (
	"errors"
	"sync"
	"time"

	"camrec/internal/media"
)

// Synthetic is a software engine that produces placeholder encoded chunks
// on a fixed cadence. It honors the full engine lifecycle, announces its
// output format at the start of every run, and is deterministic enough for
// tests while still exercising real asynchrony.
type Synthetic struct {
	format    media.TrackFormat
	interval  time.Duration
	chunkSize int
	keyEvery  int

	mu       sync.Mutex
	cb       Callback
	exec     func(func())
	running  bool
	paused   bool
	released bool
	quit     chan struct{}
}

// SyntheticOption adjusts chunk cadence or size.
type SyntheticOption func(*Synthetic)

// WithChunkInterval overrides the emission cadence.
func WithChunkInterval(d time.Duration) SyntheticOption {
	return func(s *Synthetic) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithChunkSize overrides the payload size per chunk.
func WithChunkSize(n int) SyntheticOption {
	return func(s *Synthetic) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// NewSyntheticAudio builds a synthetic audio engine for the configuration.
func NewSyntheticAudio(cfg AudioConfig, opts ...SyntheticOption) (*Synthetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Synthetic{
		format: media.TrackFormat{
			Kind:         media.StreamAudio,
			MimeType:     cfg.MimeType,
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.ChannelCount,
		},
		interval:  20 * time.Millisecond,
		chunkSize: cfg.Bitrate / 8 / 50,
		keyEvery:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewSyntheticVideo builds a synthetic video engine for the configuration.
func NewSyntheticVideo(cfg VideoConfig, opts ...SyntheticOption) (*Synthetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Synthetic{
		format: media.TrackFormat{
			Kind:     media.StreamVideo,
			MimeType: cfg.MimeType,
			Width:    cfg.Width,
			Height:   cfg.Height,
		},
		interval:  time.Second / time.Duration(cfg.FrameRate),
		chunkSize: cfg.Bitrate / 8 / cfg.FrameRate,
		keyEvery:  cfg.FrameRate * cfg.IFrameInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SyntheticAudioFactory adapts NewSyntheticAudio to the AudioFactory contract.
func SyntheticAudioFactory(opts ...SyntheticOption) AudioFactory {
	return func(cfg AudioConfig) (Encoder, error) {
		return NewSyntheticAudio(cfg, opts...)
	}
}

// SyntheticVideoFactory adapts NewSyntheticVideo to the VideoFactory contract.
func SyntheticVideoFactory(opts ...SyntheticOption) VideoFactory {
	return func(cfg VideoConfig) (Encoder, error) {
		return NewSyntheticVideo(cfg, opts...)
	}
}

// SetCallback registers the event sink for subsequent runs.
func (s *Synthetic) SetCallback(cb Callback, exec func(func())) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cb = cb
	s.exec = exec
}

// Start begins a run, or resumes a paused one.
func (s *Synthetic) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return errors.New("synthetic engine released")
	}
	if s.running {
		s.paused = false
		return nil
	}
	if s.exec == nil {
		return errors.New("synthetic engine has no callback executor")
	}
	s.running = true
	s.paused = false
	s.quit = make(chan struct{})

	cb, exec := s.cb, s.exec
	dispatch(exec, cb.OnStart)
	if cb.OnOutputConfig != nil {
		format := s.format
		exec(func() { cb.OnOutputConfig(format) })
	}
	go s.run(s.quit)
	return nil
}

// Pause suspends chunk emission without ending the run.
func (s *Synthetic) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return errors.New("synthetic engine released")
	}
	if s.running {
		s.paused = true
	}
	return nil
}

// Stop ends the run and reports stream end.
func (s *Synthetic) Stop() error {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return errors.New("synthetic engine released")
	}
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.paused = false
	close(s.quit)
	s.quit = nil
	cb, exec := s.cb, s.exec
	s.mu.Unlock()

	if exec != nil {
		dispatch(exec, cb.OnStop)
	}
	return nil
}

// Release stops any run and permanently retires the engine.
func (s *Synthetic) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit != nil {
		close(s.quit)
		s.quit = nil
	}
	s.running = false
	s.paused = false
	s.released = true
	return nil
}

func (s *Synthetic) run(quit <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	start := time.Now()
	seq := 0
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if !s.running || s.quit == nil {
			s.mu.Unlock()
			return
		}
		if s.paused {
			s.mu.Unlock()
			continue
		}
		cb, exec := s.cb, s.exec
		s.mu.Unlock()

		if cb.OnEncodedData == nil {
			continue
		}
		chunk := media.EncodedData{
			Kind:             s.format.Kind,
			Data:             make([]byte, s.chunkSize),
			PresentationTime: time.Since(start),
			KeyFrame:         s.keyEvery <= 1 || seq%s.keyEvery == 0,
		}
		seq++
		exec(func() { cb.OnEncodedData(chunk) })
	}
}

func dispatch(exec func(func()), fn func()) {
	if fn != nil {
		exec(fn)
	}
}
