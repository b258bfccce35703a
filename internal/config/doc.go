// Package config loads and validates camrec configuration from TOML.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and catalog directories
//   - Recording: recorder defaults the media spec resolver falls back to
//   - Capture: audio capture device settings
//   - Catalog: sqlite content-store settings
//   - Logging: log format and level
package config
