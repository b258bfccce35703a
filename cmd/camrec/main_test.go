package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"camrec/internal/catalog"
	"camrec/internal/mediaspec"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	// Keep sample-config paths (which expand under $HOME) inside the test dir.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if !strings.Contains(out, path) {
		t.Errorf("init output missing path: %q", out)
	}

	if _, err := runCommand(t, "config", "init", "--path", path); err == nil {
		t.Fatal("config init overwrote existing file without --overwrite")
	}
	if out, err := runCommand(t, "config", "init", "--path", path, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, out)
	}

	out, err = runCommand(t, "config", "validate", "--path", path)
	if err != nil {
		t.Fatalf("config validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Errorf("validate output = %q", out)
	}
}

func TestParseQuality(t *testing.T) {
	cases := map[string]mediaspec.Quality{
		"":     mediaspec.QualityAuto,
		"auto": mediaspec.QualityAuto,
		"SD":   mediaspec.QualitySD,
		"hd":   mediaspec.QualityHD,
		"fhd":  mediaspec.QualityFHD,
		"uhd":  mediaspec.QualityUHD,
	}
	for input, want := range cases {
		got, err := parseQuality(input)
		if err != nil || got != want {
			t.Errorf("parseQuality(%q) = %s, %v; want %s", input, got, err, want)
		}
	}
	if _, err := parseQuality("8k"); err == nil {
		t.Error("parseQuality accepted unknown tier")
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		512:      "512 B",
		2048:     "2.0 KiB",
		3 << 20:  "3.0 MiB",
		1536:     "1.5 KiB",
		10 << 20: "10.0 MiB",
	}
	for input, want := range cases {
		if got := formatBytes(input); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", input, got, want)
		}
	}
}

func TestRenderEntryTable(t *testing.T) {
	created := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	entries := []*catalog.Entry{
		{ID: 1, DisplayName: "Weekly Sync", Status: catalog.StatusComplete, Bytes: 2048, DurationMS: 1500, CreatedAt: created},
		{ID: 2, DisplayName: "Demo Day", Status: catalog.StatusPending, CreatedAt: created},
	}

	out := renderEntryTable(entries)
	for _, want := range []string{"ID", "Weekly Sync", "Demo Day", "complete", "pending", "2.0 KiB", "1.5s"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
