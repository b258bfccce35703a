package encoder

// AudioConfig is the fully composed configuration for an audio engine.
// SampleRate 0 means the engine should use the capture device's native rate.
type AudioConfig struct {
	MimeType     string
	Bitrate      int
	SampleRate   int
	ChannelCount int
}

// Validate reports whether the configuration can open an engine.
func (c AudioConfig) Validate() error {
	if c.MimeType == "" {
		return &InvalidConfigError{Field: "mime_type", Reason: "required"}
	}
	if c.Bitrate <= 0 {
		return &InvalidConfigError{Field: "bitrate", Reason: "must be positive"}
	}
	if c.SampleRate < 0 {
		return &InvalidConfigError{Field: "sample_rate", Reason: "must be zero (native) or positive"}
	}
	if c.ChannelCount <= 0 {
		return &InvalidConfigError{Field: "channel_count", Reason: "must be positive"}
	}
	return nil
}

// VideoConfig is the fully composed configuration for a video engine.
type VideoConfig struct {
	MimeType       string
	Width          int
	Height         int
	Bitrate        int
	FrameRate      int
	IFrameInterval int
}

// Validate reports whether the configuration can open an engine.
func (c VideoConfig) Validate() error {
	if c.MimeType == "" {
		return &InvalidConfigError{Field: "mime_type", Reason: "required"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &InvalidConfigError{Field: "resolution", Reason: "must be positive"}
	}
	if c.Bitrate <= 0 {
		return &InvalidConfigError{Field: "bitrate", Reason: "must be positive"}
	}
	if c.FrameRate <= 0 {
		return &InvalidConfigError{Field: "frame_rate", Reason: "must be positive"}
	}
	if c.IFrameInterval <= 0 {
		return &InvalidConfigError{Field: "iframe_interval", Reason: "must be positive"}
	}
	return nil
}
