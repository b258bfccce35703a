package config

const (
	defaultOutputDir       = "~/.local/share/camrec/recordings"
	defaultLogDir          = "~/.local/share/camrec/logs"
	defaultCatalogDir      = "~/.local/share/camrec/catalog"
	defaultContainerFormat = "mp4"
	defaultAspectRatio     = "16:9"
	defaultChannelCount    = 1
	defaultAudioBitrate    = 88200
	defaultVideoBitrate    = 10 * 1024 * 1024
	defaultFrameRate       = 30
	defaultIFrameInterval  = 1
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// defaultSampleRates lists candidate capture rates in descending priority.
// The resolver picks the highest rate the device accepts.
var defaultSampleRates = []int{48000, 44100, 22050, 11025, 8000, 4800}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			CatalogDir: defaultCatalogDir,
		},
		Recording: Recording{
			ContainerFormat: defaultContainerFormat,
			AspectRatio:     defaultAspectRatio,
			ChannelCount:    defaultChannelCount,
			AudioBitrate:    defaultAudioBitrate,
			VideoBitrate:    defaultVideoBitrate,
			FrameRate:       defaultFrameRate,
			IFrameInterval:  defaultIFrameInterval,
			SampleRates:     append([]int{}, defaultSampleRates...),
		},
		Capture: Capture{
			Device:         "default",
			MonitorHotplug: false,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
