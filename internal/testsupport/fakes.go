package testsupport

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"camrec/internal/capture"
	"camrec/internal/catalog"
	"camrec/internal/media"
	"camrec/internal/mux"
)

// FakeDevice probes like a capture device that accepts the listed sample
// rates. An empty list accepts every positive rate.
type FakeDevice struct {
	AcceptedRates []int
}

func (d FakeDevice) MinBufferSize(sampleRate, channelCount int) int {
	if sampleRate <= 0 || channelCount <= 0 {
		return -1
	}
	if len(d.AcceptedRates) == 0 {
		return 1024
	}
	for _, rate := range d.AcceptedRates {
		if rate == sampleRate {
			return 1024
		}
	}
	return -1
}

// FakeSource counts lifecycle calls so tests can assert the recorder
// drives the capture source correctly.
type FakeSource struct {
	StartCalls   atomic.Int32
	StopCalls    atomic.Int32
	ReleaseCalls atomic.Int32
}

func (s *FakeSource) Start() error {
	s.StartCalls.Add(1)
	return nil
}

func (s *FakeSource) Stop() error {
	s.StopCalls.Add(1)
	return nil
}

func (s *FakeSource) Release() error {
	s.ReleaseCalls.Add(1)
	return nil
}

// Factory adapts the source to the capture.SourceFactory contract.
func (s *FakeSource) Factory() capture.SourceFactory {
	return func(capture.SourceConfig) (capture.Source, error) {
		return s, nil
	}
}

// FailingSourceFactory returns a factory whose open always fails.
func FailingSourceFactory(err error) capture.SourceFactory {
	return func(cfg capture.SourceConfig) (capture.Source, error) {
		return nil, &capture.AccessError{Device: cfg.Device, Err: err}
	}
}

// CapturingMuxer records every muxer interaction in memory. Failure
// fields, when set, make the corresponding call return that error.
type CapturingMuxer struct {
	FailAddTrack error
	FailStart    error
	FailWrite    error

	mu          sync.Mutex
	tracks      []media.TrackFormat
	orientation int
	started     bool
	stopped     bool
	released    bool
	samples     map[int]int
	bytes       int64
}

// Factory returns a mux.Factory that always hands out this muxer.
func (m *CapturingMuxer) Factory() mux.Factory {
	return func(mux.Destination, media.Format) (mux.Muxer, error) {
		return m, nil
	}
}

func (m *CapturingMuxer) AddTrack(format media.TrackFormat) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAddTrack != nil {
		return 0, m.FailAddTrack
	}
	m.tracks = append(m.tracks, format)
	return len(m.tracks) - 1, nil
}

func (m *CapturingMuxer) SetOrientationHint(degrees int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orientation = degrees
}

func (m *CapturingMuxer) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailStart != nil {
		return m.FailStart
	}
	m.started = true
	return nil
}

func (m *CapturingMuxer) WriteSample(trackIndex int, data media.EncodedData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrite != nil {
		return m.FailWrite
	}
	if !m.started {
		return fmt.Errorf("write before start on track %d", trackIndex)
	}
	if m.samples == nil {
		m.samples = make(map[int]int)
	}
	m.samples[trackIndex]++
	m.bytes += data.Size()
	return nil
}

func (m *CapturingMuxer) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

func (m *CapturingMuxer) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
	return nil
}

func (m *CapturingMuxer) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

func (m *CapturingMuxer) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

func (m *CapturingMuxer) Tracks() []media.TrackFormat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]media.TrackFormat{}, m.tracks...)
}

func (m *CapturingMuxer) SampleCount(trackIndex int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.samples[trackIndex]
}

// FakeCatalog satisfies the recorder's ContentStore surface without
// touching sqlite. InsertErr, when set, fails resolution.
type FakeCatalog struct {
	InsertErr error
	OutputDir string

	mu        sync.Mutex
	nextID    int64
	entries   []*catalog.Entry
	finalized map[int64]string
}

func (c *FakeCatalog) Insert(_ context.Context, displayName, container string) (*catalog.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.InsertErr != nil {
		return nil, c.InsertErr
	}
	c.nextID++
	entry := &catalog.Entry{
		ID:          c.nextID,
		URI:         fmt.Sprintf("camrec://recordings/fake-%d", c.nextID),
		DisplayName: displayName,
		Container:   container,
		Status:      catalog.StatusPending,
		Path:        filepath.Join(c.OutputDir, fmt.Sprintf("fake-%d.%s", c.nextID, container)),
	}
	c.entries = append(c.entries, entry)
	return entry, nil
}

func (c *FakeCatalog) Finalize(_ context.Context, id int64, bytes int64, duration time.Duration, errMessage string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized == nil {
		c.finalized = make(map[int64]string)
	}
	c.finalized[id] = errMessage
	return nil
}

// FinalizedMessage reports whether the entry was finalized and with what
// error message.
func (c *FakeCatalog) FinalizedMessage(id int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.finalized[id]
	return msg, ok
}
