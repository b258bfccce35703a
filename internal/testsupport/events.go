package testsupport

import (
	"sync"
	"testing"
	"time"

	"camrec/internal/recorder"
)

// EventCollector accumulates recording events for assertions. The
// recorder delivers events from its sequential context; collectors are
// safe to read from the test goroutine.
type EventCollector struct {
	mu     sync.Mutex
	events []recorder.Event
}

// Listener returns the callback to register on a pending recording.
func (c *EventCollector) Listener() func(recorder.Event) {
	return func(ev recorder.Event) {
		c.mu.Lock()
		c.events = append(c.events, ev)
		c.mu.Unlock()
	}
}

// Events returns a snapshot of everything collected so far.
func (c *EventCollector) Events() []recorder.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]recorder.Event{}, c.events...)
}

// WaitFor polls until an event satisfying pred arrives or the deadline
// passes, in which case it fails the test.
func (c *EventCollector) WaitFor(t testing.TB, timeout time.Duration, pred func(recorder.Event) bool) recorder.Event {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, ev := range c.Events() {
			if pred(ev) {
				return ev
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no matching event within %s (saw %d events)", timeout, len(c.Events()))
	return nil
}

// WaitForFinalize waits for the terminal event.
func (c *EventCollector) WaitForFinalize(t testing.TB, timeout time.Duration) recorder.FinalizeEvent {
	t.Helper()

	ev := c.WaitFor(t, timeout, func(ev recorder.Event) bool {
		_, ok := ev.(recorder.FinalizeEvent)
		return ok
	})
	return ev.(recorder.FinalizeEvent)
}
