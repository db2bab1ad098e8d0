package navigation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder collects lifecycle and native events in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// plainVM implements no optional capability.
type plainVM struct {
	id string
}

func (v *plainVM) ID() string { return v.id }

// destroyVM counts Destroy calls.
type destroyVM struct {
	id        string
	mu        sync.Mutex
	destroyed int
	rec       *recorder
}

func (v *destroyVM) ID() string { return v.id }

func (v *destroyVM) Destroy() {
	v.mu.Lock()
	v.destroyed++
	v.mu.Unlock()
	if v.rec != nil {
		v.rec.add("destroy:%s", v.id)
	}
}

func (v *destroyVM) destroyCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.destroyed
}

// lifecycleVM implements Navigating, Navigated and Destructible.
type lifecycleVM struct {
	destroyVM
	navigatingErr error
	fromErr       error
	params        []string
}

func newLifecycleVM(id string, rec *recorder) *lifecycleVM {
	return &lifecycleVM{destroyVM: destroyVM{id: id, rec: rec}}
}

func (v *lifecycleVM) WhenNavigatingTo(ctx context.Context, p Parameter) error {
	v.rec.add("navigating:%s:%s", v.id, p)
	return v.navigatingErr
}

func (v *lifecycleVM) WhenNavigatedTo(ctx context.Context, p Parameter) error {
	v.rec.add("to:%s:%s", v.id, p)
	return nil
}

func (v *lifecycleVM) WhenNavigatedFrom(ctx context.Context, p Parameter) error {
	v.rec.add("from:%s:%s", v.id, p)
	return v.fromErr
}

func receive[T any](t *testing.T, sub *Subscription[T]) T {
	t.Helper()
	select {
	case v, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func ids(items []ViewModel) []string {
	return viewModelIDs(items)
}
