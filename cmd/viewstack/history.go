package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/viewstack/cmd"
	"github.com/cristianoliveira/viewstack/internal/colors"
	"github.com/cristianoliveira/viewstack/internal/config"
	"github.com/cristianoliveira/viewstack/internal/history"
)

type historyReader interface {
	List(ctx context.Context, limit int) ([]history.Snapshot, error)
	ListSession(ctx context.Context, session string) ([]history.Snapshot, error)
	Close() error
}

func openHistory() (historyReader, error) {
	store, err := history.Open(config.Get("history_db", ""))
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewHistoryCmd creates the history command. open returns the journal to
// read.
func NewHistoryCmd(open func() (historyReader, error)) *cobra.Command {
	if open == nil {
		panic("NewHistoryCmd: open dependency cannot be nil")
	}

	var limitFlag int
	var sessionFlag string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded stack snapshots",
		Long: `Show stack snapshots recorded by the demo when history_enabled is set,
newest first. With --session, show one session in recording order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limitFlag = config.GetInt("history_limit", 20)
			}

			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			var snaps []history.Snapshot
			if sessionFlag = strings.TrimSpace(sessionFlag); sessionFlag != "" {
				snaps, err = store.ListSession(cmd.Context(), sessionFlag)
			} else {
				snaps, err = store.List(cmd.Context(), limitFlag)
			}
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				colors.Info("No snapshots recorded")
				return nil
			}
			return printSnapshots(cmd, snaps)
		},
	}

	historyCmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of snapshots (default: history_limit)")
	historyCmd.Flags().StringVar(&sessionFlag, "session", "", "Only show snapshots of this session")

	return historyCmd
}

func printSnapshots(cmd *cobra.Command, snaps []history.Snapshot) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSESSION\tSTACK\tDEPTH\tVIEW MODELS")
	for _, s := range snaps {
		session := s.Session
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.RecordedAt.Local().Format(time.DateTime),
			session,
			s.Stack,
			s.Depth,
			strings.Join(s.IDs, " > "))
	}
	return w.Flush()
}

func init() {
	cmd.RootCmd.AddCommand(NewHistoryCmd(openHistory))
}
