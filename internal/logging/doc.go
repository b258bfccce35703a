// Package logging centralizes slog construction and the structured
// attribute conventions used across camrec. All recorder components log
// through *slog.Logger values built here, tagged with a component field
// and the standardized event_type / error_hint keys.
package logging
