package media

import "time"

// Format identifies the output container format.
type Format int

const (
	// FormatAuto lets the recorder substitute its default container.
	FormatAuto Format = iota
	FormatMPEG4
	FormatWebM
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatMPEG4:
		return "mp4"
	case FormatWebM:
		return "webm"
	default:
		return "unknown"
	}
}

// AudioMimeType returns the audio codec MIME type muxed into this container.
func (f Format) AudioMimeType() string {
	if f == FormatWebM {
		return "audio/vorbis"
	}
	return "audio/mp4a-latm"
}

// VideoMimeType returns the video codec MIME type muxed into this container.
func (f Format) VideoMimeType() string {
	if f == FormatWebM {
		return "video/x-vnd.on2.vp8"
	}
	return "video/avc"
}

// FileExtension returns the conventional file extension, without the dot.
func (f Format) FileExtension() string {
	if f == FormatWebM {
		return "webm"
	}
	return "mp4"
}

// StreamKind identifies one logical media stream within a recording.
type StreamKind int

const (
	StreamAudio StreamKind = iota
	StreamVideo
)

func (k StreamKind) String() string {
	if k == StreamAudio {
		return "audio"
	}
	return "video"
}

// TrackFormat is the fully negotiated output format an encoder announces
// once its engine has configured itself. The muxer needs it to add a track.
type TrackFormat struct {
	Kind     StreamKind
	MimeType string

	// Audio fields.
	SampleRate   int
	ChannelCount int

	// Video fields.
	Width  int
	Height int
}

// EncodedData is one compressed chunk delivered by an encoder. The recorder
// owns the chunk from delivery until it is written or dropped.
type EncodedData struct {
	Kind             StreamKind
	Data             []byte
	PresentationTime time.Duration
	KeyFrame         bool
}

// Size returns the payload size in bytes.
func (d EncodedData) Size() int64 {
	return int64(len(d.Data))
}
