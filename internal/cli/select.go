package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/llehouerou/flaq/internal/edit"
	"github.com/llehouerou/flaq/internal/errmsg"
	"github.com/llehouerou/flaq/internal/history"
	"github.com/llehouerou/flaq/internal/listing"
	"github.com/llehouerou/flaq/internal/query"
	"github.com/llehouerou/flaq/internal/scan"
	"github.com/llehouerou/flaq/internal/selection"
	"github.com/llehouerou/flaq/internal/tags"
)

// SelectOptions holds flags for selecting, editing and listing files.
type SelectOptions struct {
	*RootOptions
	Queries   []string
	Set       []string
	Append    bool
	Delete    []string
	Other     bool
	Strip     bool
	Clean     bool
	Detailed  bool
	DryRun    bool
	Recursive bool
}

func newSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "flaq [paths...]",
		Short: "Query and edit FLAC tags",
		Long: `Select FLAC files with a query over their tags, then list or edit them.

Without paths the configured default folder, or the working directory, is
searched. Without a query every file is selected.

Queries compare tags with literals:
  title == "Feather"            artist ~ "nujabes"
  date >= 2004-06 and date < 2006
  tracknumber <= 3 or not (genre == "Jazz")

Assignments give fields new values:
  -s 'title:"Aruarian Dance"'   -s 'artist:(Nujabes, "Cise Starr",)'

Example:
  flaq ~/Music -r -q 'artist ~ "nujabes"' -l
  flaq . -q 'date == 2005' -s 'genre:Jazz' --append -c`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd.Context(), cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.Queries, "query", "q", nil, "query selecting files; repeated queries must all match")
	f.StringArrayVarP(&opts.Set, "set", "s", nil, "field:value assignment applied to selected files")
	f.BoolVar(&opts.Append, "append", false, "append assigned values instead of replacing them")
	f.StringArrayVarP(&opts.Delete, "delete", "d", nil, "delete every value of a field (runs before --set)")
	f.BoolVarP(&opts.Other, "other", "o", false, "allow edits to non-standard fields")
	f.BoolVar(&opts.Strip, "strip", false, "remove every non-standard field")
	f.BoolVarP(&opts.Clean, "clean", "c", false, "remove duplicated values, after all other edits")
	f.BoolVarP(&opts.Detailed, "list", "l", false, "list files with their tags")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "show edits without saving them")
	f.BoolVarP(&opts.Recursive, "recursive", "r", false, "descend into subdirectories")

	return cmd
}

func runSelect(ctx context.Context, cmd *cobra.Command, opts *SelectOptions, args []string) error {
	cfg, log := opts.cfg, opts.logger

	q, err := compileQueries(opts.Queries)
	if err != nil {
		return err
	}
	plan, err := buildPlan(opts)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{cfg.DefaultFolder}
		if cfg.DefaultFolder == "" {
			roots = []string{"."}
		}
	}

	candidates, err := scan.Collect(ctx, roots, scan.Options{
		Recursive: opts.Recursive || cfg.Recursive,
		Verify:    cfg.VerifyContent,
		Logger:    log,
	})
	if err != nil {
		return errmsg.Wrap(errmsg.OpFilesCollect, err)
	}
	log.Debug("collected candidates", "roots", roots, "count", len(candidates))

	sel := selection.Selector{Workers: cfg.Workers, Logger: log}
	selected, err := sel.Select(ctx, q, candidates)
	recordHistory(opts, q, len(candidates), selected, err)
	if err != nil {
		return errmsg.Wrap(errmsg.OpQueryRun, err)
	}
	log.Debug("selected files", "count", len(selected))

	printer := listing.NewPrinter(cmd.OutOrStdout(), opts.colorMode())
	if plan.Empty() && !opts.Detailed {
		return errmsg.Wrap(errmsg.OpList, printer.Paths(selected))
	}

	var entries []listing.Entry
	for _, path := range selected {
		f, err := tags.Open(path)
		if err != nil {
			return errmsg.WrapWith(errmsg.OpFileLoad, path, err)
		}
		if !plan.Empty() {
			if err := applyPlan(plan, f, opts.DryRun, log); err != nil {
				return err
			}
		}
		entries = append(entries, listing.FromFile(f))
	}

	if opts.Detailed || opts.DryRun {
		return errmsg.Wrap(errmsg.OpList, printer.Detailed(entries))
	}
	return errmsg.Wrap(errmsg.OpList, printer.Paths(selected))
}

func compileQueries(texts []string) (*query.Query, error) {
	queries := make([]*query.Query, 0, len(texts))
	for _, text := range texts {
		q, err := query.Compile(text)
		if err != nil {
			return nil, errmsg.WrapWith(errmsg.OpQueryCompile, text, err)
		}
		queries = append(queries, q)
	}
	return query.All(queries...), nil
}

func buildPlan(opts *SelectOptions) (edit.Plan, error) {
	plan := edit.Plan{
		Append:     opts.Append,
		StripOther: opts.Strip,
		Clean:      opts.Clean,
		AllowOther: opts.Other || opts.cfg.AllowOther,
	}
	for _, text := range opts.Set {
		assignments, err := edit.ParseAssignments(text)
		if err != nil {
			return edit.Plan{}, errmsg.WrapWith(errmsg.OpEditParse, text, err)
		}
		plan.Set = append(plan.Set, assignments...)
	}
	for _, name := range opts.Delete {
		field, err := tags.ParseField(name)
		if err != nil {
			return edit.Plan{}, errmsg.Wrap(errmsg.OpEditPlan, err)
		}
		plan.Delete = append(plan.Delete, field)
	}
	if err := plan.Validate(); err != nil {
		return edit.Plan{}, errmsg.Wrap(errmsg.OpEditPlan, err)
	}
	return plan, nil
}

func applyPlan(plan edit.Plan, f *tags.File, dryRun bool, log *slog.Logger) error {
	if !plan.Apply(f.Comments) {
		log.Debug("unchanged", "path", f.Path)
		return nil
	}
	if dryRun {
		log.Info("would update", "path", f.Path)
		return nil
	}
	if err := f.Save(); err != nil {
		return errmsg.WrapWith(errmsg.OpFileSave, f.Path, err)
	}
	log.Info("updated", "path", f.Path)
	return nil
}

// recordHistory stores the outcome of a query run. Failures are logged and
// otherwise ignored.
func recordHistory(opts *SelectOptions, q *query.Query, candidates int, selected []string, runErr error) {
	if q == nil || !opts.cfg.HistoryEnabled() || opts.openHistory == nil {
		return
	}
	store, err := opts.openHistory(opts.cfg.History.Limit)
	if err != nil {
		opts.logger.Warn(errmsg.Format(errmsg.OpHistoryOpen, err))
		return
	}
	defer store.Close()

	entry := history.Entry{Query: q.Source(), Candidates: int64(candidates)}
	if runErr != nil {
		entry.Error = runErr.Error()
	} else {
		matched := int64(len(selected))
		entry.Matched = &matched
	}
	if err := store.Record(entry); err != nil {
		opts.logger.Warn(errmsg.Format(errmsg.OpHistoryRecord, err))
	}
}
