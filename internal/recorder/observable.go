package recorder

import "sync"

// Observable is a single-value cell external consumers can read or watch.
// Observers are invoked synchronously from whichever goroutine performs
// the update, and only when the value actually changes.
type Observable[T comparable] struct {
	mu        sync.Mutex
	value     T
	observers map[int]func(T)
	nextID    int
}

func newObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{value: initial, observers: make(map[int]func(T))}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Observe registers fn for future changes and returns a cancel func.
// The current value is delivered immediately.
func (o *Observable[T]) Observe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.observers[id] = fn
	current := o.value
	o.mu.Unlock()

	fn(current)
	return func() {
		o.mu.Lock()
		delete(o.observers, id)
		o.mu.Unlock()
	}
}

func (o *Observable[T]) set(value T) {
	o.mu.Lock()
	if o.value == value {
		o.mu.Unlock()
		return
	}
	o.value = value
	observers := make([]func(T), 0, len(o.observers))
	for _, fn := range o.observers {
		observers = append(observers, fn)
	}
	o.mu.Unlock()

	for _, fn := range observers {
		fn(value)
	}
}
