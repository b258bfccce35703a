// Package mediaspec models recording specifications and their resolution.
//
// Callers describe what they want with "auto" fields; Resolve merges the
// request with recorder defaults into an immutable spec the recorder keeps
// for its whole lifetime. Sample-rate selection probes the capture device
// against a descending-priority candidate list.
package mediaspec
