package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/viewstack/cmd"
	"github.com/cristianoliveira/viewstack/internal/colors"
	"github.com/cristianoliveira/viewstack/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cmd.Execute)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, execute func(context.Context) error) int {
	code := 0
	if err := execute(ctx); err != nil {
		colors.Error(err.Error())
		logging.Error("Command failed", "error", err)
		code = 1
	}
	if err := logging.ShutdownGlobal(); err != nil {
		colors.Debug("failed to close log file:", err.Error())
	}
	return code
}
