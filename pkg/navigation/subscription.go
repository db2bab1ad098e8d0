package navigation

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/cristianoliveira/viewstack/internal/mailbox"
)

// Subscription delivers values published to a stack or event stream.
// Values arrive on C in publish order; none are dropped and a slow reader
// never blocks the publisher. C is closed after Close, or when the source
// shuts down.
type Subscription[T any] struct {
	C <-chan T

	box    *mailbox.Mailbox[T]
	mu     sync.Mutex
	once   sync.Once
	closed bool
	detach func()
	stop   func() bool
}

func newSubscription[T any](detach func()) *Subscription[T] {
	box := mailbox.New[T]()
	return &Subscription[T]{C: box.C, box: box, detach: detach}
}

func (s *Subscription[T]) enqueue(v T) {
	s.box.Put(v)
}

// Close stops delivery and releases the subscription. It is safe to call
// more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		stop := s.stop
		s.mu.Unlock()

		s.box.Close()
		if stop != nil {
			stop()
		}
		if s.detach != nil {
			s.detach()
		}
	})
}

// bind ties the subscription lifetime to ctx.
func (s *Subscription[T]) bind(ctx context.Context) {
	stop := context.AfterFunc(ctx, s.Close)
	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.stop = stop
	}
	s.mu.Unlock()
	if closed {
		stop()
	}
}

// broadcaster fans values out to subscribers. With replay set, a new
// subscriber first receives the latest value.
type broadcaster[T any] struct {
	mu      sync.Mutex
	replay  bool
	latest  T
	hasLast bool
	subs    map[uint64]*Subscription[T]
	nextID  atomic.Uint64
	closed  bool
}

func newBroadcaster[T any](replay bool) *broadcaster[T] {
	return &broadcaster[T]{
		replay: replay,
		subs:   make(map[uint64]*Subscription[T]),
	}
}

// subscribe registers a subscriber bound to ctx. A nil ctx keeps the
// subscription until Close.
func (b *broadcaster[T]) subscribe(ctx context.Context) *Subscription[T] {
	id := b.nextID.Inc()
	sub := newSubscription[T](func() { b.remove(id) })

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.Close()
		return sub
	}
	b.subs[id] = sub
	if b.replay && b.hasLast {
		sub.enqueue(b.latest)
	}
	b.mu.Unlock()

	if ctx != nil {
		sub.bind(ctx)
	}
	return sub
}

// publishLocked records v and queues it for every subscriber.
// The caller must hold b.mu.
func (b *broadcaster[T]) publishLocked(v T) {
	b.latest = v
	b.hasLast = true
	for _, sub := range b.subs {
		sub.enqueue(v)
	}
}

func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.publishLocked(v)
}

func (b *broadcaster[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

func (b *broadcaster[T]) close() {
	b.mu.Lock()
	subs := make([]*Subscription[T], 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
