package mux

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"camrec/internal/media"
)

// FileSink is a reference muxer writing a flat length-prefixed framing:
// a header record per track, then one record per sample. It is not a real
// container; it exists so the orchestration layer can be exercised end to
// end without a platform muxer.
type FileSink struct {
	file     *os.File
	ownsFile bool
	format   media.Format
	rotation int
	tracks   []media.TrackFormat
	started  bool
	stopped  bool
	released bool
}

const fileSinkMagic = "CRSK0001"

// NewFileSink opens a FileSink for the destination. A Path destination
// creates (truncates) the file and the sink closes it on Release; a File
// destination is borrowed and left open.
func NewFileSink(dst Destination, format media.Format) (*FileSink, error) {
	switch {
	case dst.Path != "":
		file, err := os.Create(dst.Path)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		return &FileSink{file: file, ownsFile: true, format: format}, nil
	case dst.File != nil:
		return &FileSink{file: dst.File, format: format}, nil
	default:
		return nil, errors.New("destination has neither path nor file")
	}
}

// AddTrack registers a stream. Tracks may only be added before Start.
func (s *FileSink) AddTrack(format media.TrackFormat) (int, error) {
	if s.released {
		return 0, errors.New("muxer released")
	}
	if s.started {
		return 0, errors.New("cannot add track after muxer start")
	}
	s.tracks = append(s.tracks, format)
	return len(s.tracks) - 1, nil
}

// SetOrientationHint records the display rotation written into the header.
func (s *FileSink) SetOrientationHint(degrees int) {
	if !s.started {
		s.rotation = degrees
	}
}

// Start writes the stream header. At least one track must be registered.
func (s *FileSink) Start() error {
	if s.released {
		return errors.New("muxer released")
	}
	if s.started {
		return errors.New("muxer already started")
	}
	if len(s.tracks) == 0 {
		return errors.New("no tracks registered")
	}

	if _, err := s.file.WriteString(fileSinkMagic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	header := []any{
		uint8(s.format),
		uint16(s.rotation),
		uint8(len(s.tracks)),
	}
	for _, v := range header {
		if err := binary.Write(s.file, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, track := range s.tracks {
		fields := []any{
			uint8(track.Kind),
			uint32(track.SampleRate),
			uint16(track.ChannelCount),
			uint32(track.Width),
			uint32(track.Height),
		}
		for _, v := range fields {
			if err := binary.Write(s.file, binary.LittleEndian, v); err != nil {
				return fmt.Errorf("write track header: %w", err)
			}
		}
	}
	s.started = true
	return nil
}

// WriteSample appends one encoded chunk record.
func (s *FileSink) WriteSample(trackIndex int, data media.EncodedData) error {
	if s.released {
		return errors.New("muxer released")
	}
	if !s.started {
		return errors.New("muxer not started")
	}
	if trackIndex < 0 || trackIndex >= len(s.tracks) {
		return fmt.Errorf("unknown track index %d", trackIndex)
	}

	var flags uint8
	if data.KeyFrame {
		flags |= 1
	}
	fields := []any{
		uint8(trackIndex),
		flags,
		int64(data.PresentationTime),
		uint32(len(data.Data)),
	}
	for _, v := range fields {
		if err := binary.Write(s.file, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write sample header: %w", err)
		}
	}
	if _, err := s.file.Write(data.Data); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}

// Stop flushes the output. Idempotent.
func (s *FileSink) Stop() error {
	if s.released {
		return errors.New("muxer released")
	}
	if s.stopped {
		return nil
	}
	s.stopped = true
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	return nil
}

// Release closes owned resources. Idempotent.
func (s *FileSink) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	if s.ownsFile {
		if err := s.file.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}
	return nil
}

var _ Muxer = (*FileSink)(nil)

// FileSinkFactory adapts NewFileSink to the Factory contract.
func FileSinkFactory() Factory {
	return func(dst Destination, format media.Format) (Muxer, error) {
		return NewFileSink(dst, format)
	}
}
