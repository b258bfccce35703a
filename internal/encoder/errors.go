package encoder

import "fmt"

// InvalidConfigError reports an engine configuration that cannot open.
// The recorder treats it as a fatal setup error.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid encoder config: %s %s", e.Field, e.Reason)
}

// EncodeError wraps a runtime engine failure reported through OnError.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
