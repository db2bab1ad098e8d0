package navigation

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockView is a mock implementation of View for testing.
// It uses testify/mock for the push and pop calls; the context argument is
// not passed to Called. Native pops are simulated by sending on Popped.
//
// Example usage:
//
//	view := NewMockView()
//	view.On("PushPage", home, "", false, true).Return(nil)
//
//	stack, _ := NewViewStack(view)
//	_ = stack.PushPage(ctx, home, "", false, true)
//
//	view.Popped <- home // the user pressed back
type MockView struct {
	mock.Mock
	Popped chan ViewModel
}

// NewMockView creates a MockView with a buffered Popped channel.
func NewMockView() *MockView {
	return &MockView{Popped: make(chan ViewModel, 16)}
}

// PushPage returns a mocked error.
func (m *MockView) PushPage(ctx context.Context, viewModel ViewModel, contract string, resetStack, animate bool) error {
	args := m.Called(viewModel, contract, resetStack, animate)
	return args.Error(0)
}

// PopPage returns a mocked error.
func (m *MockView) PopPage(ctx context.Context, animate bool) error {
	args := m.Called(animate)
	return args.Error(0)
}

// PushModal returns a mocked error.
func (m *MockView) PushModal(ctx context.Context, modal ViewModel, contract string, withNavigationPage bool) error {
	args := m.Called(modal, contract, withNavigationPage)
	return args.Error(0)
}

// PopModal returns a mocked error.
func (m *MockView) PopModal(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

// PopToRootPage returns a mocked error.
func (m *MockView) PopToRootPage(ctx context.Context, animate bool) error {
	args := m.Called(animate)
	return args.Error(0)
}

// PagePopped returns the Popped channel.
func (m *MockView) PagePopped() <-chan ViewModel {
	return m.Popped
}

// MockPopupHost is a mock implementation of PopupHost for testing.
// Host events are simulated by sending on EventsC.
type MockPopupHost struct {
	mock.Mock
	EventsC chan PopupEvent
}

// NewMockPopupHost creates a MockPopupHost with a buffered event channel.
func NewMockPopupHost() *MockPopupHost {
	return &MockPopupHost{EventsC: make(chan PopupEvent, 16)}
}

// PushPopup returns a mocked error.
func (m *MockPopupHost) PushPopup(ctx context.Context, viewModel ViewModel, contract string, animate bool) error {
	args := m.Called(viewModel, contract, animate)
	return args.Error(0)
}

// PopPopup returns a mocked error.
func (m *MockPopupHost) PopPopup(ctx context.Context, animate bool) error {
	args := m.Called(animate)
	return args.Error(0)
}

// PopAllPopups returns a mocked error.
func (m *MockPopupHost) PopAllPopups(ctx context.Context, animate bool) error {
	args := m.Called(animate)
	return args.Error(0)
}

// RemovePopup returns a mocked error.
func (m *MockPopupHost) RemovePopup(ctx context.Context, viewModel ViewModel) error {
	args := m.Called(viewModel)
	return args.Error(0)
}

// Events returns the EventsC channel.
func (m *MockPopupHost) Events() <-chan PopupEvent {
	return m.EventsC
}
