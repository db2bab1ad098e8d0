package navigation

import (
	"context"
	"errors"
)

// ParameterViewStack runs the navigation lifecycle around ViewStack
// operations, handing a Parameter to each hook.
//
// Push: WhenNavigatingTo settles before the native push is issued, and
// WhenNavigatedTo runs after the append.
// Pop: the outgoing view-model gets WhenNavigatedFrom then Destroy, and the
// revealed top gets WhenNavigatedTo.
type ParameterViewStack struct {
	*ViewStack
}

// NewParameterViewStack creates a ParameterViewStack driving view.
// Pages popped natively run the pop lifecycle with an empty Parameter.
func NewParameterViewStack(view View, opts ...Option) (*ParameterViewStack, error) {
	vs, err := newViewStack(view, externallyPopped, opts)
	if err != nil {
		return nil, err
	}
	return &ParameterViewStack{ViewStack: vs}, nil
}

func externallyPopped(ctx context.Context, vs *ViewStack, vm ViewModel) {
	if err := leave(ctx, StackPage, vm, Parameter{}); err != nil {
		vs.opts.logger.Error("Lifecycle failed after native pop", "view_model", vm.ID(), "error", err)
	}
	if top, err := vs.page.store.Top(); err == nil {
		if err := arrive(ctx, StackPage, top, Parameter{}); err != nil {
			vs.opts.logger.Error("Lifecycle failed after native pop", "view_model", top.ID(), "error", err)
		}
	}
}

// PushPage pushes viewModel with the navigation lifecycle and an empty Parameter.
func (s *ParameterViewStack) PushPage(ctx context.Context, viewModel ViewModel, contract string, resetStack, animate bool) error {
	return s.PushPageWithParameter(ctx, viewModel, Parameter{}, contract, resetStack, animate)
}

// PushModal pushes modal with the navigation lifecycle and an empty Parameter.
func (s *ParameterViewStack) PushModal(ctx context.Context, modal ViewModel, contract string, withNavigationPage bool) error {
	return s.PushModalWithParameter(ctx, modal, Parameter{}, contract, withNavigationPage)
}

// PopPage pops the top page with the navigation lifecycle and an empty Parameter.
func (s *ParameterViewStack) PopPage(ctx context.Context, animate bool) error {
	return s.PopPageWithParameter(ctx, Parameter{}, animate)
}

// PopModal pops the top modal with the navigation lifecycle and an empty Parameter.
func (s *ParameterViewStack) PopModal(ctx context.Context) error {
	return s.PopModalWithParameter(ctx, Parameter{})
}

// PopToRootPage pops to the root page with the navigation lifecycle and an
// empty Parameter.
func (s *ParameterViewStack) PopToRootPage(ctx context.Context, animate bool) error {
	return s.PopToRootPageWithParameter(ctx, Parameter{}, animate)
}

// PushPageWithParameter pushes viewModel with the navigation lifecycle.
func (s *ParameterViewStack) PushPageWithParameter(ctx context.Context, viewModel ViewModel, parameter Parameter, contract string, resetStack, animate bool) error {
	if viewModel == nil {
		return nullArgument("viewModel")
	}
	before, after := s.pushSteps(StackPage, viewModel, parameter)
	return s.pushPage(ctx, "PushPage", viewModel, contract, resetStack, animate, before, after)
}

// PushModalWithParameter pushes modal with the navigation lifecycle.
func (s *ParameterViewStack) PushModalWithParameter(ctx context.Context, modal ViewModel, parameter Parameter, contract string, withNavigationPage bool) error {
	if modal == nil {
		return nullArgument("modal")
	}
	before, after := s.pushSteps(StackModal, modal, parameter)
	return s.pushModal(ctx, "PushModal", modal, contract, withNavigationPage, before, after)
}

// PopPageWithParameter pops the top page with the navigation lifecycle.
func (s *ParameterViewStack) PopPageWithParameter(ctx context.Context, parameter Parameter, animate bool) error {
	return s.popPage(ctx, "PopPage", animate, s.popLifecycle(s.page, parameter))
}

// PopModalWithParameter pops the top modal with the navigation lifecycle.
// The revealed top is the next modal, if any.
func (s *ParameterViewStack) PopModalWithParameter(ctx context.Context, parameter Parameter) error {
	return s.popModal(ctx, "PopModal", s.popLifecycle(s.modal, parameter))
}

// PopToRootPageWithParameter pops to the root page. Every removed page gets
// WhenNavigatedFrom then Destroy, top to bottom, and the root gets
// WhenNavigatedTo.
func (s *ParameterViewStack) PopToRootPageWithParameter(ctx context.Context, parameter Parameter, animate bool) error {
	var removed []ViewModel
	each := func(vm ViewModel) {
		removed = append(removed, vm)
	}
	after := func(ctx context.Context, root ViewModel) error {
		var errs []error
		for _, vm := range removed {
			if err := leave(ctx, StackPage, vm, parameter); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		return arrive(ctx, StackPage, root, parameter)
	}
	return s.popToRootPage(ctx, "PopToRootPage", animate, each, after)
}

func (s *ParameterViewStack) pushSteps(stack string, vm ViewModel, parameter Parameter) (before, after step) {
	before = func(ctx context.Context) error {
		if err := navigatingTo(ctx, vm, parameter); err != nil {
			return &NavigationError{Op: "WhenNavigatingTo", Stack: stack, Err: err}
		}
		return nil
	}
	after = func(ctx context.Context) error {
		return arrive(ctx, stack, vm, parameter)
	}
	return before, after
}

func (s *ParameterViewStack) popLifecycle(l *lane, parameter Parameter) popStep {
	return func(ctx context.Context, popped ViewModel) error {
		if err := leave(ctx, l.name(), popped, parameter); err != nil {
			return err
		}
		top, err := l.store.Top()
		if err != nil {
			return nil
		}
		return arrive(ctx, l.name(), top, parameter)
	}
}

// leave notifies vm that it is no longer current and destroys it. Destroy
// runs even when WhenNavigatedFrom fails, since vm has left the stack.
func leave(ctx context.Context, stack string, vm ViewModel, parameter Parameter) error {
	err := navigatedFrom(ctx, vm, parameter)
	destroy(vm)
	if err != nil {
		return &NavigationError{Op: "WhenNavigatedFrom", Stack: stack, Err: err}
	}
	return nil
}

func arrive(ctx context.Context, stack string, vm ViewModel, parameter Parameter) error {
	if err := navigatedTo(ctx, vm, parameter); err != nil {
		return &NavigationError{Op: "WhenNavigatedTo", Stack: stack, Err: err}
	}
	return nil
}
