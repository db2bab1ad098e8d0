package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cristianoliveira/viewstack/internal/logging"
	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

// Recorder appends every snapshot of watched stacks to a Store under one
// session ID.
type Recorder struct {
	store   *Store
	session string
	logger  logging.Logger
	now     func() time.Time
}

// NewRecorder creates a Recorder with a fresh session ID.
func NewRecorder(store *Store, logger logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Recorder{
		store:   store,
		session: uuid.NewString(),
		logger:  logger,
		now:     time.Now,
	}
}

// Session returns the session ID snapshots are recorded under.
func (r *Recorder) Session() string {
	return r.session
}

// Watch records each snapshot delivered by sub as stack until sub ends or
// ctx is done. Failed writes are logged and skipped.
func (r *Recorder) Watch(ctx context.Context, stack string, sub *navigation.Subscription[[]navigation.ViewModel]) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case items, ok := <-sub.C:
			if !ok {
				return
			}
			ids := make([]string, len(items))
			for i, vm := range items {
				ids[i] = vm.ID()
			}
			snap := Snapshot{Session: r.session, Stack: stack, IDs: ids, RecordedAt: r.now()}
			if _, err := r.store.Append(ctx, snap); err != nil {
				r.logger.Warn("Failed to record stack snapshot", "stack", stack, "error", err)
			}
		}
	}
}
