package navigation

import (
	"context"
	"slices"
)

// Stack names used in errors, logs and metrics.
const (
	StackPage  = "page"
	StackModal = "modal"
	StackPopup = "popup"
)

// Stack holds the authoritative sequence for one logical stack and
// broadcasts every change. The last element is the top.
//
// Every mutation publishes a new snapshot; published snapshots are shared
// between subscribers and must not be modified. View-models are compared
// with ==, so they should be pointer types or otherwise comparable.
type Stack struct {
	name  string
	b     *broadcaster[[]ViewModel]
	items []ViewModel // guarded by b.mu
}

// NewStack creates an empty stack. The empty snapshot is published
// immediately so subscribers always receive a current value.
func NewStack(name string) *Stack {
	s := &Stack{
		name: name,
		b:    newBroadcaster[[]ViewModel](true),
	}
	s.b.publish([]ViewModel{})
	return s
}

// Name returns the stack name.
func (s *Stack) Name() string {
	return s.name
}

// Current returns a copy of the latest snapshot.
func (s *Stack) Current() []ViewModel {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return len(s.items)
}

// Subscribe returns a subscription that first yields the current snapshot,
// then every later snapshot. The subscription ends when ctx is done or Close
// is called.
func (s *Stack) Subscribe(ctx context.Context) *Subscription[[]ViewModel] {
	return s.b.subscribe(ctx)
}

// Append pushes vm onto the stack. With reset, the whole sequence is
// replaced by [vm].
func (s *Stack) Append(vm ViewModel, reset bool) error {
	if vm == nil {
		return nullArgument("viewModel")
	}
	s.push(vm, reset)
	return nil
}

// RemoveLast removes and returns the top entry.
func (s *Stack) RemoveLast() (ViewModel, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if len(s.items) == 0 {
		return nil, s.emptyError(MessageStackEmpty)
	}
	last := s.items[len(s.items)-1]
	s.commitLocked(slices.Clone(s.items[:len(s.items)-1]))
	return last, nil
}

// Top returns the last element of the current snapshot.
func (s *Stack) Top() (ViewModel, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if len(s.items) == 0 {
		return nil, s.emptyError(MessageNoElements)
	}
	return s.items[len(s.items)-1], nil
}

// PopToRoot destroys every entry above the first, from top to bottom, then
// publishes a snapshot holding only the first entry.
func (s *Stack) PopToRoot() error {
	_, err := s.popToRoot(destroy)
	return err
}

func (s *Stack) emptyError(message string) *EmptyStackError {
	return &EmptyStackError{Stack: s.name, Message: message}
}

// commitLocked replaces the sequence and publishes it. The caller must hold
// s.b.mu and must not retain next.
func (s *Stack) commitLocked(next []ViewModel) {
	s.items = next
	s.b.publishLocked(slices.Clone(next))
}

// push appends vm and returns the entries discarded by a reset.
func (s *Stack) push(vm ViewModel, reset bool) []ViewModel {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if reset {
		discarded := s.items
		s.commitLocked([]ViewModel{vm})
		return discarded
	}
	next := make([]ViewModel, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.commitLocked(append(next, vm))
	return nil
}

// removeLastIf removes the top entry only when it is expected.
func (s *Stack) removeLastIf(expected ViewModel) bool {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	n := len(s.items)
	if n == 0 || s.items[n-1] != expected {
		return false
	}
	s.commitLocked(slices.Clone(s.items[:n-1]))
	return true
}

// removeItem removes the last occurrence of vm wherever it sits.
func (s *Stack) removeItem(vm ViewModel) bool {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] != vm {
			continue
		}
		next := make([]ViewModel, 0, len(s.items)-1)
		next = append(next, s.items[:i]...)
		next = append(next, s.items[i+1:]...)
		s.commitLocked(next)
		return true
	}
	return false
}

// popToRoot calls each for every entry above the root, top to bottom, and
// then publishes [root]. It returns the removed entries in removal order.
// each runs without the lock held so it may read the stack.
func (s *Stack) popToRoot(each func(ViewModel)) ([]ViewModel, error) {
	s.b.mu.Lock()
	if len(s.items) == 0 {
		s.b.mu.Unlock()
		return nil, s.emptyError(MessageStackEmpty)
	}
	items := slices.Clone(s.items)
	s.b.mu.Unlock()

	removed := make([]ViewModel, 0, len(items)-1)
	for i := len(items) - 1; i >= 1; i-- {
		if each != nil {
			each(items[i])
		}
		removed = append(removed, items[i])
	}

	s.b.mu.Lock()
	s.commitLocked([]ViewModel{items[0]})
	s.b.mu.Unlock()
	return removed, nil
}

// close ends every subscription.
func (s *Stack) close() {
	s.b.close()
}
