// Package cmd holds the root command of the viewstack binary. Subcommands
// register themselves on RootCmd.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/viewstack/internal/colors"
	"github.com/cristianoliveira/viewstack/internal/config"
	"github.com/cristianoliveira/viewstack/internal/logging"
	"github.com/cristianoliveira/viewstack/internal/version"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "viewstack",
	Short:             "Keep navigation stacks in step with the screens that show them.",
	Long:              `Keep navigation stacks in step with the screens that show them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

var (
	debugFlag bool
	quietFlag bool
)

func init() {
	RootCmd.Version = version.String()
	RootCmd.SetVersionTemplate("viewstack version {{.Version}}\n")
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output and log at debug level")
	RootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Only print errors")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd.OutOrStdout(), cmd)
	})
}

// setup loads configuration and starts the global logger. Flags are applied
// through the environment so they win over the config file.
func setup(cmd *cobra.Command, args []string) error {
	if debugFlag {
		_ = os.Setenv(config.EnvPrefix+"DEBUG", "true")
	}
	if quietFlag {
		_ = os.Setenv(config.EnvPrefix+"QUIET", "true")
	}
	config.Load()

	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Info("Command started", "command", cmd.CommandPath(), "args", args)
	return nil
}

func printHelpText(w io.Writer, cmd *cobra.Command) {
	if cmd != cmd.Root() {
		fmt.Fprintln(w, strings.TrimSpace(cmd.Long))
		fmt.Fprintf(w, "\nUSAGE:\n    %s\n", cmd.UseLine())
		if flags := cmd.LocalFlags().FlagUsages(); flags != "" {
			fmt.Fprintf(w, "\nOPTIONS:\n%s", flags)
		}
		return
	}

	var lines []string
	for _, name := range []string{"demo", "history", "config", "version"} {
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				lines = append(lines, fmt.Sprintf("    %-16s %s", c.Use, c.Short))
			}
		}
	}

	fmt.Fprintf(w, `viewstack %s

%s

USAGE:
    viewstack [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output and log at debug level
    --quiet         Only print errors
    -h, --help      Show help message
`, version.String(), cmd.Short, strings.Join(lines, "\n"))
}
