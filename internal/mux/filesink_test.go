package mux

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"camrec/internal/media"
)

func videoTrack() media.TrackFormat {
	return media.TrackFormat{Kind: media.StreamVideo, MimeType: "video/avc", Width: 1920, Height: 1080}
}

func audioTrack() media.TrackFormat {
	return media.TrackFormat{Kind: media.StreamAudio, MimeType: "audio/mp4a-latm", SampleRate: 44100, ChannelCount: 1}
}

func TestFileSinkWritesHeaderAndSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp4")
	sink, err := NewFileSink(Destination{Path: path}, media.FormatMPEG4)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	videoIdx, err := sink.AddTrack(videoTrack())
	if err != nil {
		t.Fatalf("AddTrack video: %v", err)
	}
	audioIdx, err := sink.AddTrack(audioTrack())
	if err != nil {
		t.Fatalf("AddTrack audio: %v", err)
	}
	if videoIdx == audioIdx {
		t.Fatalf("track indexes collide at %d", videoIdx)
	}

	sink.SetOrientationHint(90)
	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	err = sink.WriteSample(videoIdx, media.EncodedData{
		Kind:             media.StreamVideo,
		Data:             []byte("frame"),
		PresentationTime: 33 * time.Millisecond,
		KeyFrame:         true,
	})
	if err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := sink.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(raw) <= len(fileSinkMagic) {
		t.Fatalf("output only %d bytes", len(raw))
	}
	if string(raw[:len(fileSinkMagic)]) != fileSinkMagic {
		t.Fatalf("magic = %q, want %q", raw[:len(fileSinkMagic)], fileSinkMagic)
	}
}

func TestFileSinkLifecycleGuards(t *testing.T) {
	sink, err := NewFileSink(Destination{Path: filepath.Join(t.TempDir(), "out.mp4")}, media.FormatMPEG4)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Start(); err == nil {
		t.Fatal("Start with no tracks succeeded")
	}
	idx, err := sink.AddTrack(videoTrack())
	if err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	if err := sink.WriteSample(idx, media.EncodedData{Data: []byte("x")}); err == nil {
		t.Fatal("WriteSample before Start succeeded")
	}
	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := sink.AddTrack(audioTrack()); err == nil {
		t.Fatal("AddTrack after Start succeeded")
	}
	if err := sink.WriteSample(5, media.EncodedData{Data: []byte("x")}); err == nil {
		t.Fatal("WriteSample with unknown track succeeded")
	}

	if err := sink.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := sink.Stop(); err != nil {
		t.Fatalf("repeated Stop: %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("repeated Release: %v", err)
	}
	if err := sink.WriteSample(idx, media.EncodedData{Data: []byte("x")}); err == nil {
		t.Fatal("WriteSample after Release succeeded")
	}
}

func TestFileSinkBorrowedFileStaysOpen(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "out.mp4"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer file.Close()

	sink, err := NewFileSink(Destination{File: file}, media.FormatMPEG4)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if _, err := sink.AddTrack(videoTrack()); err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	if err := sink.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sink.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := sink.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// The handle belongs to the caller and must survive Release.
	if _, err := file.WriteString("trailer"); err != nil {
		t.Fatalf("borrowed file was closed: %v", err)
	}
}
