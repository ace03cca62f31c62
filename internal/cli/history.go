package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/flaq/internal/errmsg"
	"github.com/llehouerou/flaq/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Clear bool
}

func newHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently run queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "delete the recorded history")

	return cmd
}

func runHistory(w io.Writer, opts *HistoryOptions) error {
	store, err := opts.openHistory(opts.cfg.History.Limit)
	if err != nil {
		return errmsg.Wrap(errmsg.OpHistoryOpen, err)
	}
	defer store.Close()

	if opts.Clear {
		return errmsg.Wrap(errmsg.OpHistoryClear, store.Clear())
	}

	entries, err := store.Recent(opts.Limit)
	if err != nil {
		return errmsg.Wrap(errmsg.OpHistoryLoad, err)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%-14s %-9s %s\n", humanize.Time(e.RanAt), outcome(e), e.Query); err != nil {
			return err
		}
	}
	return nil
}

func outcome(e history.Entry) string {
	if e.Matched == nil {
		return "error"
	}
	return strconv.FormatInt(*e.Matched, 10) + "/" + strconv.FormatInt(e.Candidates, 10)
}
