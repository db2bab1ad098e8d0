package navigation

import "context"

// View is the native UI surface a ViewStack drives. Adapters for a specific
// toolkit implement it; each method returns once the native operation has
// completed.
type View interface {
	PushPage(ctx context.Context, viewModel ViewModel, contract string, resetStack, animate bool) error
	PopPage(ctx context.Context, animate bool) error
	PushModal(ctx context.Context, modal ViewModel, contract string, withNavigationPage bool) error
	PopModal(ctx context.Context) error
	PopToRootPage(ctx context.Context, animate bool) error

	// PagePopped emits the view-model of every page the native surface
	// removed on its own (back key, swipe). Pops requested through the
	// methods above are not reported. Nil values are ignored.
	PagePopped() <-chan ViewModel
}
