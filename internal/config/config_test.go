package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("exists = true for missing file %s", path)
	}
	if cfg.Recording.ContainerFormat != "mp4" {
		t.Errorf("ContainerFormat = %q, want mp4", cfg.Recording.ContainerFormat)
	}
	if cfg.Recording.AudioBitrate != 88200 {
		t.Errorf("AudioBitrate = %d, want 88200", cfg.Recording.AudioBitrate)
	}
	if cfg.Recording.FrameRate != 30 {
		t.Errorf("FrameRate = %d, want 30", cfg.Recording.FrameRate)
	}
	if !cfg.Catalog.Enabled {
		t.Error("catalog disabled by default")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
catalog_dir = "` + filepath.Join(dir, "catalog") + `"

[recording]
container_format = "WebM"
aspect_ratio = " 4:3 "
frame_rate = 24

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Recording.ContainerFormat != "webm" {
		t.Errorf("ContainerFormat = %q, want webm", cfg.Recording.ContainerFormat)
	}
	if cfg.Recording.AspectRatio != "4:3" {
		t.Errorf("AspectRatio = %q, want 4:3", cfg.Recording.AspectRatio)
	}
	if cfg.Recording.FrameRate != 24 {
		t.Errorf("FrameRate = %d, want 24", cfg.Recording.FrameRate)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset sections keep their defaults.
	if cfg.Recording.AudioBitrate != 88200 {
		t.Errorf("AudioBitrate = %d, want default 88200", cfg.Recording.AudioBitrate)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		section string
		wantErr string
	}{
		{"container", "[recording]\ncontainer_format = \"avi\"\n", "container_format"},
		{"aspect", "[recording]\naspect_ratio = \"21:9\"\n", "aspect_ratio"},
		{"framerate", "[recording]\nframe_rate = -1\n", "frame_rate"},
		{"loglevel", "[logging]\nlevel = \"verbose\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.section), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load error = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

func TestSampleConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("WriteSample overwrote an existing file")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.OutputDir = filepath.Join(base, "a", "out")
	cfg.Paths.LogDir = filepath.Join(base, "b", "logs")
	cfg.Paths.CatalogDir = filepath.Join(base, "c", "catalog")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.CatalogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created: %v", dir, err)
		}
	}
}
