// Package observe provides a small observable value container: the current
// value is always readable, and subscribers receive the latest value
// immediately and then on every change. Snapshots published through a Value
// must be treated as immutable; the container swaps them atomically and never
// mutates them in place.
package observe

import "sync"

// Value holds one observable value of type T.
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]chan T
	next int
}

// NewValue creates a Value seeded with the initial value.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:  initial,
		subs: make(map[int]chan T),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set publishes a new value to all subscribers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	for _, ch := range v.subs {
		deliver(ch, val)
	}
}

// Subscribe registers an observer. The returned channel carries the current
// value first, then every subsequent change; a slow observer sees conflated
// updates (intermediate values may be skipped, the latest always arrives).
// The cancel function releases the subscription and closes the channel.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, 1)
	ch <- v.cur
	id := v.next
	v.next++
	v.subs[id] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if sub, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// deliver performs a conflating send: if the subscriber has not consumed the
// previously buffered value it is replaced by the new one.
func deliver[T any](ch chan T, val T) {
	for {
		select {
		case ch <- val:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
