// Package recorder is the recording orchestration core. It owns the
// lifecycle state machine, funnels every encoder and muxer side effect
// onto one sequential execution context, gates muxer start on track
// registration, and runs the finalization pipeline that tears a
// recording down exactly once on success or error.
package recorder
