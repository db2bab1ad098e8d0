package navigation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotRegistered indicates a factory has no constructor for a type.
var ErrNotRegistered = errors.New("not registered")

// ViewModelFactory constructs view-models by type and optional contract.
type ViewModelFactory interface {
	Create(typ reflect.Type, contract string) (ViewModel, error)
}

type registryKey struct {
	typ      reflect.Type
	contract string
}

// Registry is a ViewModelFactory backed by registered constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[registryKey]func() ViewModel
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[registryKey]func() ViewModel)}
}

// Register adds a constructor for T under contract, replacing any previous one.
func Register[T ViewModel](r *Registry, contract string, ctor func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[registryKey{typ: reflect.TypeOf((*T)(nil)).Elem(), contract: contract}] = func() ViewModel { return ctor() }
}

// Create builds a view-model of typ registered under contract.
func (r *Registry) Create(typ reflect.Type, contract string) (ViewModel, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[registryKey{typ: typ, contract: contract}]
	r.mu.RUnlock()
	if !ok {
		return nil, &FactoryResolutionError{Type: typeName(typ), Contract: contract, Err: ErrNotRegistered}
	}
	return ctor(), nil
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	return typ.String()
}

// Resolve creates a T through factory.
func Resolve[T ViewModel](factory ViewModelFactory, contract string) (T, error) {
	var zero T
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if factory == nil {
		return zero, nullArgument("factory")
	}
	vm, err := factory.Create(typ, contract)
	if err != nil {
		if IsFactoryResolution(err) {
			return zero, err
		}
		return zero, &FactoryResolutionError{Type: typeName(typ), Contract: contract, Err: err}
	}
	t, ok := vm.(T)
	if !ok {
		return zero, &FactoryResolutionError{
			Type:     typeName(typ),
			Contract: contract,
			Err:      fmt.Errorf("factory returned %T", vm),
		}
	}
	return t, nil
}

// PushPageOf resolves T through factory and pushes it with the navigation
// lifecycle. The created view-model is returned even when the push fails.
func PushPageOf[T ViewModel](ctx context.Context, s *ParameterViewStack, factory ViewModelFactory, parameter Parameter, contract string, resetStack, animate bool) (T, error) {
	vm, err := Resolve[T](factory, contract)
	if err != nil {
		return vm, err
	}
	return vm, s.PushPageWithParameter(ctx, vm, parameter, contract, resetStack, animate)
}

// PushModalOf resolves T through factory and pushes it as a modal with the
// navigation lifecycle.
func PushModalOf[T ViewModel](ctx context.Context, s *ParameterViewStack, factory ViewModelFactory, parameter Parameter, contract string, withNavigationPage bool) (T, error) {
	vm, err := Resolve[T](factory, contract)
	if err != nil {
		return vm, err
	}
	return vm, s.PushModalWithParameter(ctx, vm, parameter, contract, withNavigationPage)
}
