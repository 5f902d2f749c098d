// Package discovery resolves the files, directories and extension given on
// the command line into the list of inputs a run processes.
package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/csvto/internal/config"
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/parser"
)

// Options configures discovery.
type Options struct {
	Files      []string // explicit files, kept in the order given
	Dirs       []string // directories scanned non-recursively
	Extension  string   // extension matched in Dirs, without the dot
	HasHeaders bool
}

// scriptExt is never loaded from a directory scan.
const scriptExt = ".sh"

// Discover returns the inputs for a run. Explicit files come first in the
// order given, followed by directory matches sorted by path. Duplicates are
// removed. Explicit files that cannot be stat'ed are kept so the parse step
// reports them; unreadable directories are an error.
func Discover(opts Options, logger *slog.Logger) ([]core.InputSource, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ext := strings.TrimPrefix(strings.ToLower(opts.Extension), ".")
	if ext == "" {
		ext = config.DefaultExtension
	}

	seen := make(map[string]bool)
	var sources []core.InputSource

	add := func(path string, size int64) {
		if seen[path] {
			return
		}
		seen[path] = true
		sources = append(sources, core.InputSource{
			Location:   path,
			HasHeaders: opts.HasHeaders,
			SizeBytes:  size,
		})
	}

	for _, f := range opts.Files {
		path := filepath.Clean(f)
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("input file not accessible", "path", path, "error", err)
			add(path, 0)
			continue
		}
		if info.IsDir() {
			return nil, core.NewUsageError("%s is a directory, use --dir", path)
		}
		add(path, info.Size())
	}

	for _, dir := range opts.Dirs {
		matches, err := matchDir(dir, ext)
		if err != nil {
			return nil, err
		}
		logger.Debug("scanned directory", "dir", dir, "extension", ext, "matches", len(matches))
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				logger.Warn("skipping unreadable file", "path", m, "error", err)
				continue
			}
			add(m, info.Size())
		}
	}

	return sources, nil
}

// matchDir lists the regular files directly inside dir whose extension
// matches ext case-insensitively. A compressed file matches on the
// extension beneath its compression suffix (data.csv.gz matches csv).
func matchDir(dir, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, core.NewUsageError("%s is not a directory", dir)
	}

	fsys := os.DirFS(dir)
	names, err := doublestar.Glob(fsys, "*", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	pattern := "*." + ext
	var matches []string
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, scriptExt) {
			continue
		}
		if ok, _ := doublestar.Match(pattern, strings.ToLower(parser.TrimCompressionExt(lower))); !ok {
			continue
		}
		matches = append(matches, filepath.Join(dir, name))
	}
	sort.Strings(matches)
	return matches, nil
}
