// Package selection filters candidate files by a compiled query.
package selection

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/llehouerou/flaq/internal/query"
	"github.com/llehouerou/flaq/internal/tags"
)

// Opener loads the tag environment of one file.
type Opener func(path string) (query.Environment, error)

// OpenFLAC reads the Vorbis comments of a FLAC file.
func OpenFLAC(path string) (query.Environment, error) {
	return tags.Open(path)
}

// Selector evaluates a query against many files in parallel.
type Selector struct {
	// Workers bounds the number of files processed concurrently.
	// Zero means runtime.NumCPU().
	Workers int
	// Open loads a file's tags. Nil means OpenFLAC.
	Open Opener
	// Logger receives per-file debug output. Nil disables logging.
	Logger *slog.Logger
}

type job struct {
	index int
	path  string
}

type outcome struct {
	matched bool
	err     error
}

// Select returns the paths whose tags satisfy q, in input order.
// A nil query selects every path.
//
// Every path is evaluated before Select returns. If any path fails, the
// error of the first failing path in input order is returned, wrapped with
// that path, and no selection is produced.
func (s Selector) Select(ctx context.Context, q *query.Query, paths []string) ([]string, error) {
	if q == nil {
		return append([]string(nil), paths...), nil
	}
	if len(paths) == 0 {
		return nil, nil
	}

	open := s.Open
	if open == nil {
		open = OpenFLAC
	}
	log := s.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	outcomes := make([]outcome, len(paths))
	workCh := make(chan job)

	var wg sync.WaitGroup
	for range min(s.workers(), len(paths)) {
		wg.Go(func() {
			for j := range workCh {
				outcomes[j.index] = evaluate(q, open, j.path)
				log.Debug("evaluated",
					"path", j.path,
					"matched", outcomes[j.index].matched,
					"err", outcomes[j.index].err)
			}
		})
	}

	var cancelled error
dispatch:
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case workCh <- job{index: i, path: p}:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		}
	}
	close(workCh)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	var selected []string
	for i, o := range outcomes {
		if o.err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], o.err)
		}
		if o.matched {
			selected = append(selected, paths[i])
		}
	}
	return selected, nil
}

func (s Selector) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

func evaluate(q *query.Query, open Opener, path string) outcome {
	env, err := open(path)
	if err != nil {
		return outcome{err: err}
	}
	matched, err := q.Match(env)
	return outcome{matched: matched, err: err}
}
