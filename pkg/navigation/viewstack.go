package navigation

import (
	"context"
	"sync"
)

// ViewStack keeps a page stack and a modal stack consistent with a View.
//
// Every push appends only after the View confirms it, every pop removes only
// after the View confirms it, and pops the View performs on its own are
// reconciled from View.PagePopped. At most one operation per stack is in
// flight at a time; further callers wait for the gate. WhenNavigatedTo and
// WhenNavigatedFrom run once the gate is free again.
type ViewStack struct {
	view  View
	opts  options
	page  *lane
	modal *lane

	externalPop func(ctx context.Context, vs *ViewStack, vm ViewModel)

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewViewStack creates a ViewStack driving view. It subscribes to
// view.PagePopped before returning, and stays subscribed until Close.
func NewViewStack(view View, opts ...Option) (*ViewStack, error) {
	return newViewStack(view, nil, opts)
}

func newViewStack(view View, externalPop func(ctx context.Context, vs *ViewStack, vm ViewModel), opts []Option) (*ViewStack, error) {
	if view == nil {
		return nil, nullArgument("view")
	}
	vs := &ViewStack{
		view:        view,
		opts:        applyOptions(opts),
		externalPop: externalPop,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	if vs.externalPop == nil {
		vs.externalPop = func(_ context.Context, _ *ViewStack, vm ViewModel) { destroy(vm) }
	}
	vs.page = newLane(StackPage, &vs.opts, func(ctx context.Context, vm ViewModel) {
		vs.externalPop(ctx, vs, vm)
	})
	vs.modal = newLane(StackModal, &vs.opts, nil)

	popped := view.PagePopped()
	go vs.reconcile(popped)
	return vs, nil
}

func (vs *ViewStack) reconcile(popped <-chan ViewModel) {
	defer close(vs.done)
	for {
		select {
		case <-vs.stop:
			return
		case vm, ok := <-popped:
			if !ok {
				vs.opts.logger.Debug("Page popped stream closed")
				return
			}
			vs.page.reconcile(context.Background(), vm)
		}
	}
}

// PushPage pushes viewModel through the View and appends it to the page
// stack once the View completes. With resetStack the page stack becomes
// [viewModel] and the discarded entries are destroyed.
func (vs *ViewStack) PushPage(ctx context.Context, viewModel ViewModel, contract string, resetStack, animate bool) error {
	return vs.pushPage(ctx, "PushPage", viewModel, contract, resetStack, animate, nil, nil)
}

func (vs *ViewStack) pushPage(ctx context.Context, op string, viewModel ViewModel, contract string, resetStack, animate bool, before, after step) error {
	native := func(ctx context.Context) error {
		return vs.view.PushPage(ctx, viewModel, contract, resetStack, animate)
	}
	return vs.page.push(ctx, op, viewModel, resetStack, native, before, after)
}

// PushModal pushes modal through the View and appends it to the modal stack
// once the View completes.
func (vs *ViewStack) PushModal(ctx context.Context, modal ViewModel, contract string, withNavigationPage bool) error {
	return vs.pushModal(ctx, "PushModal", modal, contract, withNavigationPage, nil, nil)
}

func (vs *ViewStack) pushModal(ctx context.Context, op string, modal ViewModel, contract string, withNavigationPage bool, before, after step) error {
	if modal == nil {
		return nullArgument("modal")
	}
	native := func(ctx context.Context) error {
		return vs.view.PushModal(ctx, modal, contract, withNavigationPage)
	}
	return vs.modal.push(ctx, op, modal, false, native, before, after)
}

// PopPage pops the top page through the View, removes it from the page stack
// and destroys it. An empty page stack fails with MessageNoElements.
func (vs *ViewStack) PopPage(ctx context.Context, animate bool) error {
	return vs.popPage(ctx, "PopPage", animate, func(_ context.Context, popped ViewModel) error {
		destroy(popped)
		return nil
	})
}

func (vs *ViewStack) popPage(ctx context.Context, op string, animate bool, after popStep) error {
	native := func(ctx context.Context) error {
		return vs.view.PopPage(ctx, animate)
	}
	return vs.page.pop(ctx, op, MessageNoElements, native, after)
}

// PopModal pops the top modal through the View, removes it from the modal
// stack and destroys it. An empty modal stack fails with MessageStackEmpty.
func (vs *ViewStack) PopModal(ctx context.Context) error {
	return vs.popModal(ctx, "PopModal", func(_ context.Context, popped ViewModel) error {
		destroy(popped)
		return nil
	})
}

func (vs *ViewStack) popModal(ctx context.Context, op string, after popStep) error {
	native := func(ctx context.Context) error {
		return vs.view.PopModal(ctx)
	}
	return vs.modal.pop(ctx, op, MessageStackEmpty, native, after)
}

// PopToRootPage pops every page above the root through the View, then
// destroys the removed pages top to bottom.
func (vs *ViewStack) PopToRootPage(ctx context.Context, animate bool) error {
	return vs.popToRootPage(ctx, "PopToRootPage", animate, destroy, nil)
}

func (vs *ViewStack) popToRootPage(ctx context.Context, op string, animate bool, each func(ViewModel), after popStep) error {
	native := func(ctx context.Context) error {
		return vs.view.PopToRootPage(ctx, animate)
	}
	return vs.page.popToRoot(ctx, op, native, each, after)
}

// TopPage returns the top of the page stack.
func (vs *ViewStack) TopPage() (ViewModel, error) {
	return vs.page.store.Top()
}

// TopModal returns the top of the modal stack.
func (vs *ViewStack) TopModal() (ViewModel, error) {
	return vs.modal.store.Top()
}

// PageCount returns the number of pages.
func (vs *ViewStack) PageCount() int {
	return vs.page.store.Len()
}

// ModalCount returns the number of modals.
func (vs *ViewStack) ModalCount() int {
	return vs.modal.store.Len()
}

// Pages returns the current page snapshot.
func (vs *ViewStack) Pages() []ViewModel {
	return vs.page.store.Current()
}

// Modals returns the current modal snapshot.
func (vs *ViewStack) Modals() []ViewModel {
	return vs.modal.store.Current()
}

// PageStack subscribes to page stack snapshots.
func (vs *ViewStack) PageStack(ctx context.Context) *Subscription[[]ViewModel] {
	return vs.page.store.Subscribe(ctx)
}

// ModalStack subscribes to modal stack snapshots.
func (vs *ViewStack) ModalStack(ctx context.Context) *Subscription[[]ViewModel] {
	return vs.modal.store.Subscribe(ctx)
}

// Close stops reconciliation and ends all subscriptions. Later operations
// fail with ErrClosed.
func (vs *ViewStack) Close() error {
	vs.closeOnce.Do(func() {
		close(vs.stop)
		<-vs.done
		vs.page.close()
		vs.modal.close()
	})
	return nil
}
