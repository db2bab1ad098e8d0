package navigation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

// step is a lifecycle hook run by a lane operation.
type step func(ctx context.Context) error

// popStep runs after a confirmed removal with the removed view-model.
type popStep func(ctx context.Context, popped ViewModel) error

// popTag marks a view-model whose removal was requested by us and is still in
// flight, so a native notification for it can be recognized as an echo.
type popTag struct {
	id     string
	vm     ViewModel
	echoed bool
}

// pushTag marks a view-model the native surface may already show but that
// is not in the store yet. A native pop of it is held until the append.
type pushTag struct {
	vm     ViewModel
	popped bool
}

// heldKey marks a context whose operation holds the lane's gate.
type heldKey struct{ l *lane }

// lane is one logical stack: its store, a gate allowing one operation in
// flight, and the pushes and pops currently in flight. Every removal goes
// through confirmPop or the store helpers called from here.
type lane struct {
	store  *Stack
	gate   *semaphore.Weighted
	opts   *options
	closed atomic.Bool

	// onNativePop runs after a pop the native surface made on its own has
	// been removed from the store.
	onNativePop func(ctx context.Context, vm ViewModel)

	mu       sync.Mutex
	inflight []*popTag
	pending  []*pushTag
}

func newLane(name string, opts *options, onNativePop func(ctx context.Context, vm ViewModel)) *lane {
	return &lane{
		store:       NewStack(name),
		gate:        semaphore.NewWeighted(1),
		opts:        opts,
		onNativePop: onNativePop,
	}
}

func (l *lane) name() string {
	return l.store.Name()
}

// enter takes the gate and returns a context marking it as held, plus an
// idempotent release. A context that already holds the gate enters without
// waiting, so hooks may navigate the same stack with the context they were
// handed.
func (l *lane) enter(ctx context.Context, op string) (context.Context, func(), error) {
	if l.closed.Load() {
		return ctx, nil, ErrClosed
	}
	if ctx.Value(heldKey{l}) != nil {
		return ctx, func() {}, nil
	}
	if err := l.gate.Acquire(ctx, 1); err != nil {
		return ctx, nil, &NavigationError{Op: op, Stack: l.name(), Err: err}
	}
	if l.closed.Load() {
		l.gate.Release(1)
		return ctx, nil, ErrClosed
	}
	release := sync.OnceFunc(func() { l.gate.Release(1) })
	return context.WithValue(ctx, heldKey{l}, true), release, nil
}

// expectPush registers vm as pushed natively but not yet appended.
func (l *lane) expectPush(vm ViewModel) *pushTag {
	tag := &pushTag{vm: vm}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, tag)
	return tag
}

// settlePush drops tag and reports whether the native surface popped its
// view-model while the push was in flight.
func (l *lane) settlePush(tag *pushTag) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = slices.DeleteFunc(l.pending, func(t *pushTag) bool { return t == tag })
	return tag.popped
}

// deferPop marks the newest in-flight push of vm as popped.
func (l *lane) deferPop(vm ViewModel) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.pending) - 1; i >= 0; i-- {
		if tag := l.pending[i]; tag.vm == vm && !tag.popped {
			tag.popped = true
			return true
		}
	}
	return false
}

// expectPop registers in-flight tags for vms.
func (l *lane) expectPop(vms ...ViewModel) []*popTag {
	tags := make([]*popTag, 0, len(vms))
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, vm := range vms {
		tag := &popTag{id: uuid.New().String(), vm: vm}
		l.inflight = append(l.inflight, tag)
		tags = append(tags, tag)
	}
	return tags
}

// settle drops the given tags.
func (l *lane) settle(tags []*popTag) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight = slices.DeleteFunc(l.inflight, func(t *popTag) bool {
		return slices.Contains(tags, t)
	})
}

// consumeEcho reports whether vm names a pop we are performing. Each tag
// absorbs one notification.
func (l *lane) consumeEcho(vm ViewModel) (*popTag, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, tag := range l.inflight {
		if !tag.echoed && tag.vm == vm {
			tag.echoed = true
			return tag, true
		}
	}
	return nil, false
}

// confirmPop is the single removal path for pops: it removes the top only
// when it is expected.
func (l *lane) confirmPop(expected ViewModel) bool {
	if !l.store.removeLastIf(expected) {
		return false
	}
	l.depthChanged()
	return true
}

func (l *lane) depthChanged() {
	l.opts.metrics.setDepth(l.name(), l.store.Len())
}

func (l *lane) begin(ctx context.Context, op string, vm ViewModel) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := startSpan(ctx, l.opts.tracer, op, l.name(), vm)
	return ctx, func(err error) {
		endSpan(span, err)
		l.opts.metrics.observe(l.name(), op, start, err)
		if err != nil {
			l.opts.logger.Debug("Stack operation failed", "stack", l.name(), "op", op, "error", err)
		}
	}
}

// push runs before, the native push and the append while holding the gate,
// then releases it and runs after. The append happens strictly after native
// returns. A native pop of vm reported before the append is applied right
// after it.
func (l *lane) push(ctx context.Context, op string, vm ViewModel, reset bool, native step, before, after step) (err error) {
	if vm == nil {
		return nullArgument("viewModel")
	}
	ctx, end := l.begin(ctx, op, vm)
	defer func() { end(err) }()

	held, release, err := l.enter(ctx, op)
	if err != nil {
		return err
	}
	defer release()

	if before != nil {
		if err = before(held); err != nil {
			return err
		}
	}

	l.opts.logger.Debug("Pushing onto stack", "stack", l.name(), "view_model", vm.ID(), "reset", reset)
	tag := l.expectPush(vm)
	if err = native(held); err != nil {
		l.settlePush(tag)
		return &NavigationError{Op: op, Stack: l.name(), Err: err}
	}

	discarded := l.store.push(vm, reset)
	l.depthChanged()
	for _, old := range discarded {
		if old != vm {
			destroy(old)
		}
	}
	l.opts.logger.Debug("Added to stack", "stack", l.name(), "view_model", vm.ID(), "depth", l.store.Len())

	poppedEarly := l.settlePush(tag) && l.confirmPop(vm)
	if poppedEarly {
		l.opts.logger.Debug("Removed entry popped by the native surface during push", "stack", l.name(), "view_model", vm.ID(), "depth", l.store.Len())
		l.opts.metrics.reconciled(l.name(), ReconcileRemoved)
	}
	release()

	if after != nil {
		err = after(ctx)
	}
	if poppedEarly && l.onNativePop != nil {
		l.onNativePop(ctx, vm)
	}
	return err
}

// pop captures the top, runs the native pop and confirms the removal while
// holding the gate, then runs after. An empty stack fails with emptyMessage
// before native is called.
func (l *lane) pop(ctx context.Context, op, emptyMessage string, native step, after popStep) (err error) {
	ctx, end := l.begin(ctx, op, nil)
	defer func() { end(err) }()

	held, release, err := l.enter(ctx, op)
	if err != nil {
		return err
	}
	defer release()

	top, topErr := l.store.Top()
	if topErr != nil {
		return l.store.emptyError(emptyMessage)
	}

	tags := l.expectPop(top)
	defer l.settle(tags)

	l.opts.logger.Debug("Popping from stack", "stack", l.name(), "view_model", top.ID(), "pop_id", tags[0].id)
	if err = native(held); err != nil {
		return &NavigationError{Op: op, Stack: l.name(), Err: err}
	}

	if !l.confirmPop(top) {
		l.opts.logger.Warn("Stack top changed while pop was in flight",
			"stack", l.name(), "expected", top.ID(), "stack_ids", viewModelIDs(l.store.Current()))
		return nil
	}
	l.opts.logger.Debug("Removed from stack", "stack", l.name(), "view_model", top.ID(), "depth", l.store.Len())
	release()

	if after != nil {
		return after(ctx, top)
	}
	return nil
}

// popToRoot runs the native pop-to-root, then removes every entry above the
// root calling each top to bottom. It releases the gate before running after
// with the root.
func (l *lane) popToRoot(ctx context.Context, op string, native step, each func(ViewModel), after popStep) (err error) {
	ctx, end := l.begin(ctx, op, nil)
	defer func() { end(err) }()

	held, release, err := l.enter(ctx, op)
	if err != nil {
		return err
	}
	defer release()

	if l.store.Len() == 0 {
		return l.store.emptyError(MessageStackEmpty)
	}
	if err = native(held); err != nil {
		return &NavigationError{Op: op, Stack: l.name(), Err: err}
	}

	removed, err := l.store.popToRoot(each)
	if err != nil {
		return err
	}
	l.depthChanged()
	l.opts.logger.Debug("Popped stack to root", "stack", l.name(), "removed", viewModelIDs(removed))
	root, topErr := l.store.Top()
	release()

	if after != nil && topErr == nil {
		return after(ctx, root)
	}
	return nil
}

// popAll runs the native pop-all and then removes entries one at a time,
// top to bottom, publishing a snapshot and calling each per removal.
func (l *lane) popAll(ctx context.Context, op string, native step, each func(ViewModel)) (err error) {
	ctx, end := l.begin(ctx, op, nil)
	defer func() { end(err) }()

	held, release, err := l.enter(ctx, op)
	if err != nil {
		return err
	}
	defer release()

	items := l.store.Current()
	if len(items) == 0 {
		return nil
	}
	tags := l.expectPop(items...)
	defer l.settle(tags)

	if err = native(held); err != nil {
		return &NavigationError{Op: op, Stack: l.name(), Err: err}
	}

	for i := len(items) - 1; i >= 0; i-- {
		if !l.store.removeItem(items[i]) {
			continue
		}
		l.depthChanged()
		if each != nil {
			each(items[i])
		}
	}
	l.opts.logger.Debug("Removed all entries", "stack", l.name(), "removed", viewModelIDs(items))
	return nil
}

// remove runs the native removal of vm and then removes its last occurrence.
func (l *lane) remove(ctx context.Context, op string, vm ViewModel, native step, after popStep) (err error) {
	if vm == nil {
		return nullArgument("viewModel")
	}
	ctx, end := l.begin(ctx, op, vm)
	defer func() { end(err) }()

	held, release, err := l.enter(ctx, op)
	if err != nil {
		return err
	}
	defer release()

	tags := l.expectPop(vm)
	defer l.settle(tags)

	if err = native(held); err != nil {
		return &NavigationError{Op: op, Stack: l.name(), Err: err}
	}
	if !l.store.removeItem(vm) {
		return nil
	}
	l.depthChanged()
	release()

	if after != nil {
		return after(ctx, vm)
	}
	return nil
}

// reconcile handles a notification that the native surface removed vm on its
// own and runs onNativePop when the stack changed. A pop of a view-model
// whose push is still in flight is left to that push.
func (l *lane) reconcile(ctx context.Context, vm ViewModel) bool {
	if vm == nil {
		return false
	}
	if tag, ok := l.consumeEcho(vm); ok {
		l.opts.logger.Debug("Ignoring echo of in-flight pop", "stack", l.name(), "view_model", vm.ID(), "pop_id", tag.id)
		l.opts.metrics.reconciled(l.name(), ReconcileEcho)
		return false
	}
	if l.deferPop(vm) {
		l.opts.logger.Debug("Holding native pop until push completes", "stack", l.name(), "view_model", vm.ID())
		l.opts.metrics.reconciled(l.name(), ReconcileDeferred)
		return false
	}
	if !l.confirmPop(vm) {
		l.opts.logger.Debug("Ignoring stale pop notification", "stack", l.name(), "view_model", vm.ID())
		l.opts.metrics.reconciled(l.name(), ReconcileStale)
		return false
	}
	l.opts.logger.Debug("Removed entry popped by the native surface", "stack", l.name(), "view_model", vm.ID(), "depth", l.store.Len())
	l.opts.metrics.reconciled(l.name(), ReconcileRemoved)
	if l.onNativePop != nil {
		l.onNativePop(ctx, vm)
	}
	return true
}

func (l *lane) close() {
	l.closed.Store(true)
	l.store.close()
}
