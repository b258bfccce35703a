package recorder

import (
	"sync"
	"testing"
	"time"
)

func TestExecutorRunsTasksInSubmissionOrder(t *testing.T) {
	exec := newExecutor()
	defer exec.close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	const n = 50
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		exec.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, got := range order {
		if got != i {
			t.Fatalf("task %d ran at position %d", got, i)
		}
	}
}

func TestExecutorCloseDrainsQueueAndDropsLateSubmits(t *testing.T) {
	exec := newExecutor()

	ran := make(chan struct{})
	exec.Submit(func() { close(ran) })
	exec.close()
	exec.wait()

	select {
	case <-ran:
	default:
		t.Fatal("queued task dropped by close")
	}

	late := make(chan struct{})
	exec.Submit(func() { close(late) })
	select {
	case <-late:
		t.Fatal("submit after close still ran")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExecutorCloseFromOwnTask(t *testing.T) {
	exec := newExecutor()
	exec.Submit(func() { exec.close() })

	done := make(chan struct{})
	go func() {
		exec.wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("executor did not exit after closing from its own task")
	}
}

func TestObservableNotifiesOnChangeOnly(t *testing.T) {
	obs := newObservable(StreamInactive)

	var got []StreamState
	cancel := obs.Observe(func(s StreamState) { got = append(got, s) })
	defer cancel()

	obs.set(StreamInactive)
	obs.set(StreamActive)
	obs.set(StreamActive)
	obs.set(StreamInactive)

	want := []StreamState{StreamInactive, StreamActive, StreamInactive}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notification %d = %s, want %s", i, got[i], want[i])
		}
	}

	cancel()
	obs.set(StreamActive)
	if len(got) != len(want) {
		t.Fatal("observer notified after cancel")
	}
}
