// Package scan collects the FLAC files a command operates on.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/llehouerou/flaq/internal/tags"
)

// Options controls candidate collection.
type Options struct {
	// Recursive descends into subdirectories of directory roots.
	Recursive bool
	// Verify confirms each walked file is FLAC by content, not only by
	// extension.
	Verify bool
	// Logger receives skipped entries at debug level. Nil disables logging.
	Logger *slog.Logger
}

// Collect expands roots into FLAC file paths. Files given explicitly must
// be FLAC. Directories are walked, skipping hidden entries, and yield
// their .flac files in lexical order. Results keep root order and each
// path appears once.
func Collect(ctx context.Context, roots []string, opts Options) ([]string, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var paths []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := checkFile(root, opts.Verify); err != nil {
				return nil, err
			}
			add(root)
			continue
		}

		found, err := walk(ctx, root, opts, log)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}

	return paths, nil
}

func checkFile(path string, verify bool) error {
	if verify {
		return tags.Identify(path)
	}
	if !tags.IsFLAC(path) {
		return fmt.Errorf("%s: %w", path, tags.ErrNotFLAC)
	}
	return nil
}

func walk(ctx context.Context, root string, opts Options, log *slog.Logger) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			// Unreadable entries are skipped; the rest of the tree is still scanned.
			log.Debug("skipping unreadable entry", "path", path, "err", walkErr)
			return nil
		}

		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !tags.IsFLAC(path) {
			return nil
		}
		if opts.Verify {
			if err := tags.Identify(path); err != nil {
				log.Debug("skipping non-FLAC content", "path", path, "err", err)
				return nil
			}
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(found)
	return found, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
