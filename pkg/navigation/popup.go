package navigation

import (
	"context"
	"sync"
)

// PopupEventKind identifies a popup host event.
type PopupEventKind int

const (
	PopupPushing PopupEventKind = iota
	PopupPushed
	PopupPopping
	PopupPopped
)

func (k PopupEventKind) String() string {
	switch k {
	case PopupPushing:
		return "pushing"
	case PopupPushed:
		return "pushed"
	case PopupPopping:
		return "popping"
	case PopupPopped:
		return "popped"
	default:
		return "unknown"
	}
}

// PopupEvent is emitted by a PopupHost around every popup change.
type PopupEvent struct {
	Kind      PopupEventKind
	ViewModel ViewModel
	Animated  bool

	// Native is set when the host made the change on its own, for example
	// on a back key, rather than in answer to a PopupHost call.
	Native bool
}

// PopupHost is the native surface that shows popups above pages and modals.
type PopupHost interface {
	PushPopup(ctx context.Context, viewModel ViewModel, contract string, animate bool) error
	PopPopup(ctx context.Context, animate bool) error
	PopAllPopups(ctx context.Context, animate bool) error
	RemovePopup(ctx context.Context, viewModel ViewModel) error

	// Events emits push and pop events for every popup change. Changes
	// the host performs on its own carry Native.
	Events() <-chan PopupEvent
}

// PopupStack keeps a popup stack consistent with a PopupHost. It follows
// the ViewStack rules; a native Popped event for the current top is
// reconciled as a pop we did not request. Popped events for changes the
// stack asked for are relayed but never reconciled.
type PopupStack struct {
	host   PopupHost
	opts   options
	popup  *lane
	events *broadcaster[PopupEvent]

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewPopupStack creates a PopupStack driving host.
func NewPopupStack(host PopupHost, opts ...Option) (*PopupStack, error) {
	if host == nil {
		return nil, nullArgument("host")
	}
	ps := &PopupStack{
		host:   host,
		opts:   applyOptions(opts),
		events: newBroadcaster[PopupEvent](false),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	ps.popup = newLane(StackPopup, &ps.opts, func(_ context.Context, vm ViewModel) { destroy(vm) })

	events := host.Events()
	go ps.listen(events)
	return ps, nil
}

func (ps *PopupStack) listen(events <-chan PopupEvent) {
	defer close(ps.done)
	for {
		select {
		case <-ps.stop:
			return
		case ev, ok := <-events:
			if !ok {
				ps.opts.logger.Debug("Popup event stream closed")
				return
			}
			if ev.Kind == PopupPopped && ev.Native {
				ps.popup.reconcile(context.Background(), ev.ViewModel)
			}
			ps.events.publish(ev)
		}
	}
}

// PushPopup shows viewModel through the host and appends it once shown.
func (ps *PopupStack) PushPopup(ctx context.Context, viewModel ViewModel, contract string, animate bool) error {
	native := func(ctx context.Context) error {
		return ps.host.PushPopup(ctx, viewModel, contract, animate)
	}
	return ps.popup.push(ctx, "PushPopup", viewModel, false, native, nil, nil)
}

// PopPopup hides the top popup, removes it and destroys it.
func (ps *PopupStack) PopPopup(ctx context.Context, animate bool) error {
	native := func(ctx context.Context) error {
		return ps.host.PopPopup(ctx, animate)
	}
	return ps.popup.pop(ctx, "PopPopup", MessageStackEmpty, native, func(_ context.Context, popped ViewModel) error {
		destroy(popped)
		return nil
	})
}

// PopAllPopups hides every popup, then removes them one at a time from the
// top, publishing a snapshot and destroying the popup for each removal.
func (ps *PopupStack) PopAllPopups(ctx context.Context, animate bool) error {
	native := func(ctx context.Context) error {
		return ps.host.PopAllPopups(ctx, animate)
	}
	return ps.popup.popAll(ctx, "PopAllPopups", native, destroy)
}

// RemovePopup hides viewModel wherever it sits in the stack, removes it and
// destroys it.
func (ps *PopupStack) RemovePopup(ctx context.Context, viewModel ViewModel) error {
	native := func(ctx context.Context) error {
		return ps.host.RemovePopup(ctx, viewModel)
	}
	return ps.popup.remove(ctx, "RemovePopup", viewModel, native, func(_ context.Context, popped ViewModel) error {
		destroy(popped)
		return nil
	})
}

// TopPopup returns the top popup.
func (ps *PopupStack) TopPopup() (ViewModel, error) {
	return ps.popup.store.Top()
}

// PopupCount returns the number of popups.
func (ps *PopupStack) PopupCount() int {
	return ps.popup.store.Len()
}

// PopupStack subscribes to popup stack snapshots.
func (ps *PopupStack) PopupStack(ctx context.Context) *Subscription[[]ViewModel] {
	return ps.popup.store.Subscribe(ctx)
}

// Events subscribes to host events relayed after reconciliation.
func (ps *PopupStack) Events(ctx context.Context) *Subscription[PopupEvent] {
	return ps.events.subscribe(ctx)
}

// Close stops listening to the host and ends all subscriptions.
func (ps *PopupStack) Close() error {
	ps.closeOnce.Do(func() {
		close(ps.stop)
		<-ps.done
		ps.popup.close()
		ps.events.close()
	})
	return nil
}
