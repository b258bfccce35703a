package recorder

import "sync"

// executor is the recorder's sequential execution context. Every encoder
// and muxer side effect, and every encoder callback, runs on its single
// worker goroutine in submission order, so none of them ever interleave.
type executor struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

func newExecutor() *executor {
	e := &executor{done: make(chan struct{})}
	e.cond = sync.NewCond(&e.mu)
	go e.loop()
	return e
}

// Submit enqueues fn. Tasks submitted after close are dropped.
func (e *executor) Submit(fn func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue, fn)
	e.cond.Signal()
	e.mu.Unlock()
}

// close stops the worker after the already queued tasks drain. Safe to
// call from a task running on the worker itself.
func (e *executor) close() {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		e.cond.Signal()
	}
	e.mu.Unlock()
}

// wait blocks until the worker has exited.
func (e *executor) wait() {
	<-e.done
}

func (e *executor) loop() {
	defer close(e.done)
	for {
		e.mu.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 && e.closed {
			e.mu.Unlock()
			return
		}
		fn := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		fn()
	}
}
