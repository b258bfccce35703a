package testsupport

import (
	"path/filepath"
	"testing"

	"camrec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "recordings")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfg.Capture.Device = "synthetic"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithContainerFormat overrides the output container on the test config.
func WithContainerFormat(format string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Recording.ContainerFormat = format
	}
}

// WithLegacyDevice marks the capture device as legacy, which removes the
// native-rate fallback during sample-rate selection.
func WithLegacyDevice() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Capture.LegacyDevice = true
	}
}
