package capture

// DefaultDevice assumes the standard PCM rates are available, which holds
// for the synthetic pipeline and for any modern sound stack.
type DefaultDevice struct{}

// MinBufferSize returns a buffer covering 100ms of 16-bit samples.
func (DefaultDevice) MinBufferSize(sampleRate, channelCount int) int {
	if sampleRate <= 0 || channelCount <= 0 {
		return -1
	}
	return sampleRate * channelCount * 2 / 10
}

// NullSource is a no-op capture source. The synthetic encoder engines
// generate their own payloads, so nothing needs to produce raw samples.
type NullSource struct{}

func (NullSource) Start() error   { return nil }
func (NullSource) Stop() error    { return nil }
func (NullSource) Release() error { return nil }

// NullSourceFactory adapts NullSource to the SourceFactory contract.
func NullSourceFactory() SourceFactory {
	return func(SourceConfig) (Source, error) {
		return NullSource{}, nil
	}
}
