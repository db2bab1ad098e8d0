package demo

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/cristianoliveira/viewstack/internal/logging"
	"github.com/cristianoliveira/viewstack/pkg/navigation"
	"github.com/cristianoliveira/viewstack/pkg/teanav"
)

const opTimeout = 5 * time.Second

// Program is the part of a bubbletea program the app drives.
// *tea.Program satisfies it.
type Program interface {
	teanav.Sender
	Run() (tea.Model, error)
	Quit()
}

// ProgramFactory creates the program running model.
type ProgramFactory func(model tea.Model) Program

// NewProgram runs model full screen.
func NewProgram(model tea.Model) Program {
	return tea.NewProgram(model, tea.WithAltScreen())
}

// Options configures an App.
type Options struct {
	Animate bool
	Logger  logging.Logger
	Metrics *navigation.Metrics
	Tracer  trace.Tracer
}

// App wires the page, modal and popup stacks to a teanav host.
type App struct {
	journal  *Journal
	registry *navigation.Registry
	host     *teanav.Host
	pages    *navigation.ParameterViewStack
	popups   *navigation.PopupStack
	home     *HomeViewModel
	animate  *atomic.Bool
	toasts   atomic.Int64
	logger   logging.Logger
}

// New builds the app. Call Close when done.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetGlobal()
	}

	a := &App{
		journal:  NewJournal(8),
		registry: navigation.NewRegistry(),
		animate:  atomic.NewBool(opts.Animate),
		logger:   logger,
	}
	a.home = &HomeViewModel{journal: a.journal}

	navigation.Register(a.registry, "", func() *DetailViewModel {
		return &DetailViewModel{journal: a.journal}
	})
	navigation.Register(a.registry, "", func() *SettingsViewModel {
		return &SettingsViewModel{journal: a.journal, animate: a.animate}
	})

	locator := teanav.NewLocator()
	teanav.Register(locator, "", func(vm *HomeViewModel) tea.Model { return newPageScreen(a, vm, 0) })
	teanav.Register(locator, "", func(vm *DetailViewModel) tea.Model { return newPageScreen(a, vm, vm.Depth()) })
	teanav.Register(locator, "", func(vm *SettingsViewModel) tea.Model { return newSettingsScreen(a, vm) })
	teanav.Register(locator, "", func(vm *ToastViewModel) tea.Model { return newToastScreen(a, vm) })
	a.host = teanav.NewHost(locator)

	navOpts := []navigation.Option{
		navigation.WithLogger(logger),
		navigation.WithMetrics(opts.Metrics),
		navigation.WithTracer(opts.Tracer),
	}
	pages, err := navigation.NewParameterViewStack(a.host, navOpts...)
	if err != nil {
		return nil, fmt.Errorf("demo: create page stack: %w", err)
	}
	popups, err := navigation.NewPopupStack(a.host, navOpts...)
	if err != nil {
		_ = pages.Close()
		return nil, fmt.Errorf("demo: create popup stack: %w", err)
	}
	a.pages, a.popups = pages, popups
	return a, nil
}

// Host returns the bubbletea root model.
func (a *App) Host() *teanav.Host { return a.host }

// Pages returns the page and modal stacks.
func (a *App) Pages() *navigation.ParameterViewStack { return a.pages }

// Popups returns the popup stack.
func (a *App) Popups() *navigation.PopupStack { return a.popups }

// Home returns the root view-model.
func (a *App) Home() *HomeViewModel { return a.home }

// Journal returns the lifecycle journal shown on every page.
func (a *App) Journal() *Journal { return a.journal }

// Run shows the home page and runs the program until it quits or ctx is done.
func (a *App) Run(ctx context.Context, newProgram ProgramFactory) error {
	if newProgram == nil {
		newProgram = NewProgram
	}
	p := newProgram(a.host)
	a.host.Attach(p)

	g, gctx := errgroup.WithContext(ctx)
	exited := make(chan struct{})
	g.Go(func() error {
		defer close(exited)
		defer a.host.Stop()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("demo: run program: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := a.showHome(gctx); err != nil {
			p.Quit()
			if errors.Is(err, teanav.ErrStopped) {
				return nil
			}
			return fmt.Errorf("demo: show home: %w", err)
		}
		select {
		case <-gctx.Done():
			p.Quit()
		case <-exited:
		}
		return nil
	})
	return g.Wait()
}

func (a *App) showHome(ctx context.Context) error {
	param := navigation.NewParameter("source", "start")
	return a.pages.PushPageWithParameter(ctx, a.home, param, "", true, false)
}

// Close stops the stacks and their subscriptions.
func (a *App) Close() error {
	return errors.Join(a.pages.Close(), a.popups.Close())
}

// resultMsg reports the outcome of a navigation command to the top screen.
type resultMsg struct {
	op  string
	err error
}

// navigate runs fn off the bubbletea loop, which has to stay free to apply
// the host side of the operation.
func (a *App) navigate(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		err := fn(ctx)
		if err != nil {
			a.logger.Warn("Navigation failed", "op", op, "error", err)
		}
		return resultMsg{op: op, err: err}
	}
}

// OpenDetail pushes a detail page at depth.
func (a *App) OpenDetail(depth int) tea.Cmd {
	return a.navigate("open detail", func(ctx context.Context) error {
		param := navigation.NewParameter(ParamDepth, depth)
		_, err := navigation.PushPageOf[*DetailViewModel](ctx, a.pages, a.registry, param, "", false, a.animate.Load())
		return err
	})
}

// Back pops the current page through the stack.
func (a *App) Back() tea.Cmd {
	return a.navigate("back", func(ctx context.Context) error {
		return a.pages.PopPageWithParameter(ctx, navigation.NewParameter("reason", "back"), a.animate.Load())
	})
}

// BackToRoot pops every page above home.
func (a *App) BackToRoot() tea.Cmd {
	return a.navigate("back to root", func(ctx context.Context) error {
		return a.pages.PopToRootPageWithParameter(ctx, navigation.NewParameter("reason", "root"), a.animate.Load())
	})
}

// OpenSettings shows the settings modal.
func (a *App) OpenSettings() tea.Cmd {
	return a.navigate("open settings", func(ctx context.Context) error {
		_, err := navigation.PushModalOf[*SettingsViewModel](ctx, a.pages, a.registry, navigation.Parameter{}, "", true)
		return err
	})
}

// CloseSettings pops the settings modal.
func (a *App) CloseSettings() tea.Cmd {
	return a.navigate("close settings", func(ctx context.Context) error {
		return a.pages.PopModal(ctx)
	})
}

// ShowToast pushes a popup with text.
func (a *App) ShowToast(text string) tea.Cmd {
	toast := &ToastViewModel{journal: a.journal, seq: a.toasts.Inc(), text: text}
	return a.navigate("show toast", func(ctx context.Context) error {
		return a.popups.PushPopup(ctx, toast, "", a.animate.Load())
	})
}

// DismissToasts removes every popup.
func (a *App) DismissToasts() tea.Cmd {
	return a.navigate("dismiss toasts", func(ctx context.Context) error {
		return a.popups.PopAllPopups(ctx, a.animate.Load())
	})
}
