package mediaspec

import (
	"camrec/internal/media"
)

// AudioSource identifies the capture input tuning.
type AudioSource int

const (
	SourceAuto AudioSource = iota
	SourceCamcorder
	SourceMicrophone
)

func (s AudioSource) String() string {
	switch s {
	case SourceCamcorder:
		return "camcorder"
	case SourceMicrophone:
		return "microphone"
	default:
		return "auto"
	}
}

// SampleFormat identifies the raw sample encoding produced by the source.
type SampleFormat int

const (
	SampleFormatAuto SampleFormat = iota
	SampleFormatPCM16
)

func (f SampleFormat) String() string {
	if f == SampleFormatPCM16 {
		return "pcm16"
	}
	return "auto"
}

// Channel counts. ChannelCountNone disables the audio track entirely.
const (
	ChannelCountAuto = -1
	ChannelCountNone = 0
	ChannelCountMono = 1
)

// AspectRatio identifies the video frame shape.
type AspectRatio int

const (
	RatioAuto AspectRatio = iota
	Ratio4x3
	Ratio16x9
)

func (r AspectRatio) String() string {
	switch r {
	case Ratio4x3:
		return "4:3"
	case Ratio16x9:
		return "16:9"
	default:
		return "auto"
	}
}

// Quality selects a target video resolution tier.
type Quality int

const (
	QualityAuto Quality = iota
	QualitySD
	QualityHD
	QualityFHD
	QualityUHD
)

func (q Quality) String() string {
	switch q {
	case QualitySD:
		return "sd"
	case QualityHD:
		return "hd"
	case QualityFHD:
		return "fhd"
	case QualityUHD:
		return "uhd"
	default:
		return "auto"
	}
}

// Resolution returns the frame size for this quality at the given aspect
// ratio. QualityAuto resolves to FHD.
func (q Quality) Resolution(ratio AspectRatio) (width, height int) {
	switch q {
	case QualitySD:
		height = 480
	case QualityHD:
		height = 720
	case QualityUHD:
		height = 2160
	default:
		height = 1080
	}
	if ratio == Ratio4x3 {
		width = height * 4 / 3
	} else {
		width = height * 16 / 9
	}
	return width, height
}

// AudioSpec describes the audio half of a recording request. Note the
// channel-count sentinels: ChannelCountAuto requests the default while
// ChannelCountNone mutes the recording; use DefaultRequest as a starting
// point rather than a zero-value spec.
type AudioSpec struct {
	Source       AudioSource
	SourceFormat SampleFormat
	ChannelCount int
	SampleRates  []int
}

// VideoSpec describes the video half of a recording request.
type VideoSpec struct {
	AspectRatio AspectRatio
	Quality     Quality
}

// MediaSpec bundles audio, video, and container selections. A resolved
// MediaSpec is immutable: created once per recorder, only read afterwards.
type MediaSpec struct {
	OutputFormat media.Format
	Audio        AudioSpec
	Video        VideoSpec
}

// Muted reports whether the spec disables the audio track.
func (s MediaSpec) Muted() bool {
	return s.Audio.ChannelCount == ChannelCountNone
}
