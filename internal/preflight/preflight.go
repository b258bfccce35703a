package preflight

import (
	"camrec/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckFreeSpace("Output free space", cfg.Paths.OutputDir, minFreeBytes))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.Catalog.Enabled {
		results = append(results, CheckDirectoryAccess("Catalog directory", cfg.Paths.CatalogDir))
	}

	if cfg.Capture.Device != "" {
		results = append(results, CheckCaptureDevice(cfg.Capture.Device))
	}

	return results
}

// AllPassed reports whether every check in the set passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
