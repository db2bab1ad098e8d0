package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/viewstack/cmd"
	"github.com/cristianoliveira/viewstack/internal/config"
)

// NewConfigCmd creates the config command. entries yields the effective
// configuration sorted by key.
func NewConfigCmd(entries func() []config.Entry) *cobra.Command {
	if entries == nil {
		panic("NewConfigCmd: entries dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "config [key]",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after defaults, config.toml and
VIEWSTACK_* environment variables are applied. With a key, print only its value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			all := entries()
			if len(args) == 1 {
				for _, e := range all {
					if e.Key == args[0] {
						_, err := fmt.Fprintln(out, e.Value)
						return err
					}
				}
				return fmt.Errorf("config: unknown key %q", args[0])
			}
			for _, e := range all {
				if _, err := fmt.Fprintf(out, "%s = %q\n", e.Key, e.Value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewConfigCmd(config.All))
}
