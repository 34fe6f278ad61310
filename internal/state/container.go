// Package state holds observable snapshots that presentation layers subscribe to.
package state

import "sync"

// Container stores the latest value of T and notifies subscribers on every Set.
// Subscribers run synchronously in registration order and must not call Set.
type Container[T any] struct {
	mu        sync.RWMutex
	notifyMu  sync.Mutex
	value     T
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

func NewContainer[T any](initial T) *Container[T] {
	return &Container[T]{value: initial}
}

func (c *Container[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and notifies subscribers. Concurrent Sets are
// delivered one at a time so observers never see them out of order.
func (c *Container[T]) Set(value T) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.value = value
	listeners := append([]listener[T](nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (c *Container[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, l := range c.listeners {
				if l.id == id {
					c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// SubscriberCount reports the number of registered subscribers.
func (c *Container[T]) SubscriberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners)
}
