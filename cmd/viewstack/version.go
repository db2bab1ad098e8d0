package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/viewstack/cmd"
	"github.com/cristianoliveira/viewstack/internal/version"
)

// NewVersionCmd creates the version command. current reports the version.
func NewVersionCmd(current func() string) *cobra.Command {
	if current == nil {
		panic("NewVersionCmd: version dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of viewstack.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "viewstack version %s\n", current())
			return err
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewVersionCmd(version.String))
}
