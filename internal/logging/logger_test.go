package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponent(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "recorder").Info("recording started",
		String(FieldRecordingID, "abc"),
		Int("tracks", 2))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Errorf("line missing level: %q", line)
	}
	if !strings.Contains(line, "[recorder]") {
		t.Errorf("line missing component prefix: %q", line)
	}
	if !strings.Contains(line, "recording started") {
		t.Errorf("line missing message: %q", line)
	}
	if !strings.Contains(line, "recording_id=abc") || !strings.Contains(line, "tracks=2") {
		t.Errorf("line missing attrs: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line emitted below level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn line suppressed: %q", out)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "camrec.log")
	logger, err := New(Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hello", String("k", "v"))

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"hello"`) {
		t.Errorf("log file content = %q", raw)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}
