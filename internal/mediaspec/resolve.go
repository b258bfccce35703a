package mediaspec

import (
	"errors"
	"fmt"

	"camrec/internal/capture"
	"camrec/internal/config"
	"camrec/internal/media"
)

// DefaultSampleRate is the fallback rate when no candidate is accepted.
// It is safe on effectively every capture device.
const DefaultSampleRate = 44100

// RateUnspecified requests the capture device's native rate.
const RateUnspecified = 0

// ErrNoSampleRate is returned when a legacy device accepts neither a
// candidate rate nor the fallback. It is a fatal configuration error.
var ErrNoSampleRate = errors.New("no available sample rate")

// Defaults carries the values substituted for "auto" spec fields.
type Defaults struct {
	OutputFormat media.Format
	Source       AudioSource
	SourceFormat SampleFormat
	ChannelCount int
	SampleRates  []int
	AspectRatio  AspectRatio
}

// BuiltinDefaults mirror the fixed recorder defaults: 16-bit PCM from a
// camcorder-tuned input, mono, 16:9, MPEG-4 container.
func BuiltinDefaults() Defaults {
	return Defaults{
		OutputFormat: media.FormatMPEG4,
		Source:       SourceCamcorder,
		SourceFormat: SampleFormatPCM16,
		ChannelCount: ChannelCountMono,
		SampleRates:  []int{48000, 44100, 22050, 11025, 8000, 4800},
		AspectRatio:  Ratio16x9,
	}
}

// DefaultsFromConfig builds Defaults from the [recording] config section.
func DefaultsFromConfig(rec config.Recording) (Defaults, error) {
	d := BuiltinDefaults()
	switch rec.ContainerFormat {
	case "", "mp4":
		d.OutputFormat = media.FormatMPEG4
	case "webm":
		d.OutputFormat = media.FormatWebM
	default:
		return Defaults{}, fmt.Errorf("unknown container format %q", rec.ContainerFormat)
	}
	switch rec.AspectRatio {
	case "", "16:9":
		d.AspectRatio = Ratio16x9
	case "4:3":
		d.AspectRatio = Ratio4x3
	default:
		return Defaults{}, fmt.Errorf("unknown aspect ratio %q", rec.AspectRatio)
	}
	if rec.ChannelCount >= 0 {
		d.ChannelCount = rec.ChannelCount
	}
	if len(rec.SampleRates) > 0 {
		d.SampleRates = append([]int{}, rec.SampleRates...)
	}
	return d, nil
}

// DefaultRequest returns a request with every field set to auto.
func DefaultRequest() MediaSpec {
	return MediaSpec{
		OutputFormat: media.FormatAuto,
		Audio: AudioSpec{
			Source:       SourceAuto,
			SourceFormat: SampleFormatAuto,
			ChannelCount: ChannelCountAuto,
		},
		Video: VideoSpec{
			AspectRatio: RatioAuto,
			Quality:     QualityAuto,
		},
	}
}

// Resolve fills every auto field of spec from defaults. Pure: neither
// argument is mutated, and the result never changes afterwards.
func Resolve(spec MediaSpec, defaults Defaults) MediaSpec {
	resolved := spec
	if resolved.OutputFormat == media.FormatAuto {
		resolved.OutputFormat = defaults.OutputFormat
	}
	if resolved.Audio.Source == SourceAuto {
		resolved.Audio.Source = defaults.Source
	}
	if resolved.Audio.SourceFormat == SampleFormatAuto {
		resolved.Audio.SourceFormat = defaults.SourceFormat
	}
	if resolved.Audio.ChannelCount == ChannelCountAuto {
		resolved.Audio.ChannelCount = defaults.ChannelCount
	}
	if len(resolved.Audio.SampleRates) == 0 {
		resolved.Audio.SampleRates = append([]int{}, defaults.SampleRates...)
	}
	if resolved.Video.AspectRatio == RatioAuto {
		resolved.Video.AspectRatio = defaults.AspectRatio
	}
	return resolved
}

// SelectSampleRate picks the highest rate from the spec's descending
// candidate list that the device accepts. When none is accepted it falls
// back to DefaultSampleRate, then to the device's native rate
// (RateUnspecified); legacy devices have no native-rate fallback, so the
// selection fails instead.
func SelectSampleRate(audio AudioSpec, device capture.Device, legacy bool) (int, error) {
	channels := audio.ChannelCount
	if channels <= 0 {
		channels = ChannelCountMono
	}
	for _, rate := range audio.SampleRates {
		if device.MinBufferSize(rate, channels) > 0 {
			return rate, nil
		}
	}
	if device.MinBufferSize(DefaultSampleRate, channels) > 0 {
		return DefaultSampleRate, nil
	}
	if legacy {
		return 0, ErrNoSampleRate
	}
	return RateUnspecified, nil
}
