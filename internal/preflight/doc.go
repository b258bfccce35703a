// Package preflight runs environment checks before a recording session
// starts: directory permissions, free space, and capture device presence.
package preflight
