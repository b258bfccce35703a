package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Output directory", dir)
	if !result.Passed {
		t.Fatalf("writable temp dir failed: %s", result.Detail)
	}

	result = CheckDirectoryAccess("Output directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatal("missing directory passed")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Errorf("detail = %q", result.Detail)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if result := CheckDirectoryAccess("Output directory", file); result.Passed {
		t.Fatal("plain file passed as directory")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("Free space", dir, 1); !result.Passed {
		t.Fatalf("1-byte minimum failed: %s", result.Detail)
	}
	if result := CheckFreeSpace("Free space", dir, 1<<62); result.Passed {
		t.Fatal("absurd minimum passed")
	}
}

func TestCheckCaptureDevice(t *testing.T) {
	if result := CheckCaptureDevice("synthetic"); !result.Passed {
		t.Fatalf("synthetic device failed: %s", result.Detail)
	}
	if result := CheckCaptureDevice(filepath.Join(t.TempDir(), "missing")); result.Passed {
		t.Fatal("missing device node passed")
	}

	node := filepath.Join(t.TempDir(), "pcm")
	if err := os.WriteFile(node, nil, 0o644); err != nil {
		t.Fatalf("write node: %v", err)
	}
	if result := CheckCaptureDevice(node); !result.Passed {
		t.Fatalf("readable node failed: %s", result.Detail)
	}
}
