package navigation

import (
	"errors"
	"fmt"
)

// Messages carried by EmptyStackError.
const (
	MessageStackEmpty = "Stack is empty."
	MessageNoElements = "Sequence contains no elements"
)

// Sentinel errors for common conditions.
var (
	// ErrNullArgument indicates a required view-model, modal or parameter was nil.
	ErrNullArgument = errors.New("value cannot be null")

	// ErrEmptyStack is matched by every EmptyStackError.
	ErrEmptyStack = errors.New("empty stack")

	// ErrClosed indicates the stack was used after Close.
	ErrClosed = errors.New("view stack closed")
)

// nullArgument reports a nil argument by name.
func nullArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrNullArgument, name)
}

// EmptyStackError reports a pop or top on an empty stack.
// Message is MessageStackEmpty for pops and MessageNoElements for top reads.
type EmptyStackError struct {
	Stack   string
	Message string
}

func (e *EmptyStackError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrEmptyStack) match.
func (e *EmptyStackError) Is(target error) bool {
	return target == ErrEmptyStack
}

// ViewResolutionError reports that no usable view exists for a view-model.
type ViewResolutionError struct {
	ViewModelType string
	Contract      string
	Reason        string
}

func (e *ViewResolutionError) Error() string {
	if e.Contract != "" {
		return fmt.Sprintf("could not resolve view for view model type %s with contract %s: %s", e.ViewModelType, e.Contract, e.Reason)
	}
	return fmt.Sprintf("could not resolve view for view model type %s: %s", e.ViewModelType, e.Reason)
}

// FactoryResolutionError reports that a view-model factory cannot construct a type.
type FactoryResolutionError struct {
	Type     string
	Contract string
	Err      error
}

func (e *FactoryResolutionError) Error() string {
	msg := fmt.Sprintf("could not create view model of type %s", e.Type)
	if e.Contract != "" {
		msg += fmt.Sprintf(" with contract %s", e.Contract)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FactoryResolutionError) Unwrap() error {
	return e.Err
}

// NavigationError wraps a failure raised by the View, a PopupHost or a
// lifecycle hook while a stack operation was running.
type NavigationError struct {
	Op    string // Operation that failed (e.g., "PushPage", "WhenNavigatingTo")
	Stack string // Stack the operation targeted
	Err   error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation: %s on %s stack: %v", e.Op, e.Stack, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// IsEmptyStack checks if an error reports an empty stack.
func IsEmptyStack(err error) bool {
	return errors.Is(err, ErrEmptyStack)
}

// IsViewResolution checks if an error is a view resolution failure.
func IsViewResolution(err error) bool {
	var target *ViewResolutionError
	return errors.As(err, &target)
}

// IsFactoryResolution checks if an error is a view-model factory failure.
func IsFactoryResolution(err error) bool {
	var target *FactoryResolutionError
	return errors.As(err, &target)
}
