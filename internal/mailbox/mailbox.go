// Package mailbox provides an unbounded, ordered hand-off between a sender
// that must never block and a single reader.
package mailbox

import "sync"

// Mailbox delivers every value passed to Put on C in order. Put never
// blocks; values queue until the reader takes them. C is closed after
// Close.
type Mailbox[T any] struct {
	C <-chan T

	ch     chan T
	mu     sync.Mutex
	queue  []T
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

// New starts a mailbox and its delivery goroutine.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{
		ch:     make(chan T),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	m.C = m.ch
	go m.pump()
	return m
}

// Put queues v for delivery.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	m.queue = append(m.queue, v)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Close stops delivery and closes C. Queued values are dropped. It is safe
// to call more than once.
func (m *Mailbox[T]) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Mailbox[T]) pump() {
	defer close(m.ch)
	for {
		select {
		case <-m.done:
			return
		case <-m.notify:
		}
		for {
			m.mu.Lock()
			if len(m.queue) == 0 {
				m.mu.Unlock()
				break
			}
			v := m.queue[0]
			m.queue = m.queue[1:]
			m.mu.Unlock()

			select {
			case m.ch <- v:
			case <-m.done:
				return
			}
		}
	}
}
