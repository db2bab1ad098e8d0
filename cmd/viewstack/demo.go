package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/viewstack/cmd"
	"github.com/cristianoliveira/viewstack/internal/colors"
	"github.com/cristianoliveira/viewstack/internal/config"
	"github.com/cristianoliveira/viewstack/internal/demo"
	"github.com/cristianoliveira/viewstack/internal/history"
	"github.com/cristianoliveira/viewstack/internal/logging"
	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

type demoOptions struct {
	Animate     bool
	TracePath   string
	MetricsAddr string
	HistoryDB   string
}

type demoRunner interface {
	RunDemo(ctx context.Context, opts demoOptions) error
}

// NewDemoCmd creates the demo command with explicit dependencies.
func NewDemoCmd(runner demoRunner) *cobra.Command {
	if runner == nil {
		panic("NewDemoCmd: runner dependency cannot be nil")
	}

	var noAnimateFlag bool
	var traceFlag bool

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive navigation demo",
		Long: `Run an interactive terminal app driven by the navigation stacks.

KEY BINDINGS:
    n, enter    Push the next detail page
    b           Pop the current page through the stack
    esc         Go back natively (popup, then page)
    r           Pop back to the home page
    m           Open the settings modal
    p           Show a toast popup
    x           Dismiss every toast
    ?           Toggle help
    ctrl+c      Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := demoOptions{
				Animate:     config.GetBool("animate", true) && !noAnimateFlag,
				MetricsAddr: config.Get("metrics_addr", ""),
			}
			if traceFlag || config.GetBool("trace_enabled", false) {
				opts.TracePath = filepath.Join(config.Get("state_dir", os.TempDir()), "traces.json")
			}
			if config.GetBool("history_enabled", false) {
				opts.HistoryDB = config.Get("history_db", "")
			}
			return runner.RunDemo(cmd.Context(), opts)
		},
	}

	demoCmd.Flags().BoolVar(&noAnimateFlag, "no-animate", false, "Disable animated transitions")
	demoCmd.Flags().BoolVar(&traceFlag, "trace", false, "Write navigation spans to {state_dir}/traces.json")

	return demoCmd
}

// defaultDemoRunner wires the demo app to metrics, tracing and history.
type defaultDemoRunner struct {
	newProgram demo.ProgramFactory
}

func (r defaultDemoRunner) RunDemo(ctx context.Context, opts demoOptions) error {
	logger := logging.With("component", "demo")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := newRegistry()
	appOpts := demo.Options{
		Animate: opts.Animate,
		Logger:  logger,
		Metrics: navigation.NewMetrics(reg),
	}

	if opts.TracePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.TracePath), 0o755); err != nil {
			return fmt.Errorf("demo: create trace directory: %w", err)
		}
		traces, err := openTraceFile(opts.TracePath)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := traces.Close(shutdownCtx); err != nil {
				logger.Warn("Failed to flush traces", "error", err)
			}
			colors.Info("Traces written to", opts.TracePath)
		}()
		appOpts.Tracer = traces.provider.Tracer("github.com/cristianoliveira/viewstack/internal/demo")
	}

	if opts.MetricsAddr != "" {
		srv, err := serveMetrics(opts.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Close(shutdownCtx)
		}()
	}

	app, err := demo.New(appOpts)
	if err != nil {
		return err
	}
	defer app.Close()

	var rec *history.Recorder
	if opts.HistoryDB != "" {
		store, err := history.Open(opts.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = history.NewRecorder(store, logger)
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	if rec != nil {
		streams := map[string]*navigation.Subscription[[]navigation.ViewModel]{
			navigation.StackPage:  app.Pages().PageStack(ctx),
			navigation.StackModal: app.Pages().ModalStack(ctx),
			navigation.StackPopup: app.Popups().PopupStack(ctx),
		}
		for name, sub := range streams {
			name, sub := name, sub
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec.Watch(ctx, name, sub)
			}()
		}
		logger.Info("Recording history", "session", rec.Session(), "db", opts.HistoryDB)
	}

	// The program owns the terminal until it exits.
	colors.SetOutputWriters(io.Discard, io.Discard)
	defer colors.SetOutputWriters(os.Stdout, os.Stderr)

	return app.Run(ctx, r.newProgram)
}

func init() {
	cmd.RootCmd.AddCommand(NewDemoCmd(defaultDemoRunner{newProgram: demo.NewProgram}))
}
