// Package mux defines the container-muxer contract the recorder drives,
// the output-destination options a recording can target, and FileSink, a
// trivially framed reference muxer used by tests and the CLI demo.
package mux
