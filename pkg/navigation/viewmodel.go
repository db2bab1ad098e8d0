package navigation

import "context"

// ViewModel is the identity unit that flows through a stack.
// ID is for display and debugging; it is not a uniqueness key and the same
// view-model may appear in a stack more than once.
type ViewModel interface {
	ID() string
}

// Navigating is implemented by view-models that need to prepare before the
// native push is issued. The hook runs while the stack is busy; to navigate
// the same stack from it, pass on the ctx it receives.
type Navigating interface {
	WhenNavigatingTo(ctx context.Context, parameter Parameter) error
}

// Navigated is implemented by view-models that want to know when they become,
// or stop being, the current destination. These hooks run after the stack
// is free again, so they may navigate it, for example to redirect.
type Navigated interface {
	WhenNavigatedTo(ctx context.Context, parameter Parameter) error
	WhenNavigatedFrom(ctx context.Context, parameter Parameter) error
}

// Destructible is implemented by view-models that need explicit teardown when
// removed from a stack.
type Destructible interface {
	Destroy()
}

func navigatingTo(ctx context.Context, vm ViewModel, parameter Parameter) error {
	if n, ok := vm.(Navigating); ok {
		return n.WhenNavigatingTo(ctx, parameter)
	}
	return nil
}

func navigatedTo(ctx context.Context, vm ViewModel, parameter Parameter) error {
	if n, ok := vm.(Navigated); ok {
		return n.WhenNavigatedTo(ctx, parameter)
	}
	return nil
}

func navigatedFrom(ctx context.Context, vm ViewModel, parameter Parameter) error {
	if n, ok := vm.(Navigated); ok {
		return n.WhenNavigatedFrom(ctx, parameter)
	}
	return nil
}

func destroy(vm ViewModel) {
	if d, ok := vm.(Destructible); ok {
		d.Destroy()
	}
}

// viewModelIDs returns the IDs of items, used for log fields.
func viewModelIDs(items []ViewModel) []string {
	ids := make([]string, 0, len(items))
	for _, vm := range items {
		if vm == nil {
			ids = append(ids, "<nil>")
			continue
		}
		ids = append(ids, vm.ID())
	}
	return ids
}
