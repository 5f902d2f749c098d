package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/parser"
)

// DefaultDebounce is how long Watch waits after the last change before
// loading.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Dirs      []string
	Extension string
	Debounce  time.Duration
	// OnReport receives the report of every triggered run.
	OnReport func(*Report)
}

// Watch loads files with the given extension whenever they are created or
// written in one of the directories. It blocks until ctx is cancelled.
func (e *Engine) Watch(ctx context.Context, opts WatchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range opts.Dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ext := "." + strings.TrimPrefix(strings.ToLower(opts.Extension), ".")

	e.logger.Info("watching for changes", "dirs", opts.Dirs, "extension", ext)

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !matchesExt(event.Name, ext) {
				continue
			}
			e.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			inputs := pendingInputs(pending, e.svc.HasHeaders())
			clear(pending)
			if len(inputs) == 0 {
				continue
			}
			report, err := e.RunInputs(ctx, inputs)
			if err != nil {
				return err
			}
			if opts.OnReport != nil {
				opts.OnReport(report)
			}
		}
	}
}

// matchesExt reports whether path has ext beneath any compression suffix.
func matchesExt(path, ext string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".sh") {
		return false
	}
	return filepath.Ext(parser.TrimCompressionExt(lower)) == ext
}

func pendingInputs(pending map[string]bool, hasHeaders bool) []core.InputSource {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	inputs := make([]core.InputSource, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		inputs = append(inputs, core.InputSource{Location: p, HasHeaders: hasHeaders, SizeBytes: info.Size()})
	}
	return inputs
}
