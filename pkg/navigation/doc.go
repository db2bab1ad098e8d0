// Package navigation keeps an observable model of a page stack and a modal
// stack in step with a native UI surface.
//
// A ViewStack mediates every push and pop through a View. The stack entry is
// appended only after the View confirms a push, and removed only after the
// View confirms a pop. Pops the native surface performs on its own (a back
// key, a swipe) arrive on View.PagePopped and are reconciled against the
// current top of the page stack.
//
// # Basic Usage
//
//	stack, err := navigation.NewViewStack(view,
//	    navigation.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	defer stack.Close()
//
//	if err := stack.PushPage(ctx, home, "", false, true); err != nil {
//	    return err
//	}
//
//	sub := stack.PageStack(ctx)
//	for snapshot := range sub.C {
//	    fmt.Println(len(snapshot))
//	}
//
// # Lifecycle
//
// ParameterViewStack layers the navigation lifecycle on top of ViewStack.
// View-models may implement any of Navigating, Navigated and Destructible;
// absent capabilities are skipped.
//
// # Popups
//
// PopupStack applies the same synchronization to a third, independent stack
// driven by a PopupHost.
package navigation
