// Package cli implements the flaq command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/flaq/internal/config"
	"github.com/llehouerou/flaq/internal/errmsg"
	"github.com/llehouerou/flaq/internal/history"
	"github.com/llehouerou/flaq/internal/listing"
	"github.com/llehouerou/flaq/internal/query"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	Color      string

	// Set by PersistentPreRunE.
	cfg    *config.Config
	logger *slog.Logger

	// openHistory opens the query history store; tests replace it.
	openHistory func(limit int) (*history.Store, error)
}

// NewRootCommand creates the root command for the flaq CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{openHistory: history.Open})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := newSelectCommand(opts)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return errmsg.Wrap(errmsg.OpConfigLoad, err)
		}
		if opts.Color != "" {
			if _, err := listing.ParseColorMode(opts.Color); err != nil {
				return err
			}
			cfg.Color = opts.Color
		}
		opts.cfg = cfg
		opts.logger = newLogger(cmd, opts.Verbose)
		return nil
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "configuration file, loaded after the default locations")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "", "colorize output (auto|always|never)")

	// Add subcommands
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newFieldsCommand(opts))

	return cmd
}

// newLogger configures logging based on the verbose flag.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

func (o *RootOptions) colorMode() listing.ColorMode {
	mode, err := listing.ParseColorMode(o.cfg.Color)
	if err != nil {
		return listing.ColorAuto
	}
	return mode
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var perr *query.ParseError
	var eerr *query.EvalError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &perr), errors.As(err, &eerr):
		return 2
	case errors.Is(err, os.ErrNotExist):
		return 3
	default:
		return 1
	}
}

// Execute runs the root command and returns the process exit status.
func Execute(ctx context.Context) int {
	cmd := NewRootCommand()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return exitCode(err)
}
