package teanav

import (
	"reflect"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

type locatorKey struct {
	typ      reflect.Type
	contract string
}

// Locator resolves the bubbletea model that renders a view-model.
type Locator struct {
	mu    sync.RWMutex
	views map[locatorKey]func(navigation.ViewModel) tea.Model
}

// NewLocator creates an empty Locator.
func NewLocator() *Locator {
	return &Locator{views: make(map[locatorKey]func(navigation.ViewModel) tea.Model)}
}

// Register adds a view constructor for view-models of type T under contract.
// Lookups match the dynamic type of a view-model, so T must be a concrete
// type; Register panics when T is an interface.
func Register[T navigation.ViewModel](l *Locator, contract string, ctor func(T) tea.Model) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() == reflect.Interface {
		panic("teanav: Register needs a concrete view-model type, got interface " + typ.String())
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.views[locatorKey{typ: typ, contract: contract}] = func(vm navigation.ViewModel) tea.Model {
		return ctor(vm.(T))
	}
}

// Resolve builds the view for vm. It fails with a ViewResolutionError when no
// view is registered for the type and contract, or the constructor yields nil.
func (l *Locator) Resolve(vm navigation.ViewModel, contract string) (tea.Model, error) {
	if vm == nil {
		return nil, &navigation.ViewResolutionError{ViewModelType: "<nil>", Contract: contract, Reason: "view model is nil"}
	}
	typ := reflect.TypeOf(vm)

	l.mu.RLock()
	ctor, ok := l.views[locatorKey{typ: typ, contract: contract}]
	l.mu.RUnlock()
	if !ok {
		return nil, &navigation.ViewResolutionError{ViewModelType: typ.String(), Contract: contract, Reason: "no view registered"}
	}

	model := ctor(vm)
	if model == nil {
		return nil, &navigation.ViewResolutionError{ViewModelType: typ.String(), Contract: contract, Reason: "view constructor returned nil"}
	}
	return model, nil
}
