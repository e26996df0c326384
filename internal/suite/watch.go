package suite

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Debounce is how long Watch waits after a change before reporting it, so
// that one save producing several events runs the suite once.
const Debounce = 100 * time.Millisecond

// Watch calls fn with the path of every watched file that was written,
// until ctx is done. Directories holding the files are watched rather than
// the files, so editors that replace a file on save are still seen.
func Watch(ctx context.Context, logger *zap.Logger, paths []string, fn func(path string)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		watched[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	timer := time.NewTimer(Debounce)
	timer.Stop()
	changed := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if p, ok := watched[abs]; ok {
				changed[p] = true
				timer.Reset(Debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			names := make([]string, 0, len(changed))
			for p := range changed {
				names = append(names, p)
			}
			slices.Sort(names)
			clear(changed)
			for _, p := range names {
				logger.Debug("suite changed", zap.String("path", p))
				fn(p)
			}
		}
	}
}
