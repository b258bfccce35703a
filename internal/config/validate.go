package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRecording(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Catalog.Enabled && c.Paths.CatalogDir == "" {
		return errors.New("paths.catalog_dir must be set when the catalog is enabled")
	}
	return nil
}

func (c *Config) validateRecording() error {
	switch c.Recording.ContainerFormat {
	case "mp4", "webm":
	default:
		return fmt.Errorf("recording.container_format must be mp4 or webm, got %q", c.Recording.ContainerFormat)
	}
	switch c.Recording.AspectRatio {
	case "16:9", "4:3":
	default:
		return fmt.Errorf("recording.aspect_ratio must be 16:9 or 4:3, got %q", c.Recording.AspectRatio)
	}
	if c.Recording.ChannelCount < 0 || c.Recording.ChannelCount > 2 {
		return errors.New("recording.channel_count must be 0 (muted), 1, or 2")
	}
	if c.Recording.AudioBitrate <= 0 {
		return errors.New("recording.audio_bitrate must be positive")
	}
	if c.Recording.VideoBitrate <= 0 {
		return errors.New("recording.video_bitrate must be positive")
	}
	if c.Recording.FrameRate <= 0 {
		return errors.New("recording.frame_rate must be positive")
	}
	if c.Recording.IFrameInterval <= 0 {
		return errors.New("recording.iframe_interval must be positive")
	}
	if len(c.Recording.SampleRates) == 0 {
		return errors.New("recording.sample_rates must list at least one candidate rate")
	}
	for i, rate := range c.Recording.SampleRates {
		if rate <= 0 {
			return fmt.Errorf("recording.sample_rates[%d] must be positive", i)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
