package recorder

import "time"

// Stats accumulates per-recording counters. Both fields are monotonically
// non-decreasing within one recording and reset to zero when the next
// recording starts.
type Stats struct {
	// Duration is the elapsed time since the first video sample.
	Duration time.Duration
	// Bytes is the cumulative size of samples written to the muxer.
	Bytes int64
}
