package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"pipbuilddeps/pkg/config"
	"pipbuilddeps/pkg/errors"
)

// watchDebounce coalesces bursts of filesystem events (editors typically
// emit several per save) into a single re-run.
const watchDebounce = 500 * time.Millisecond

// watchLoop re-runs discovery whenever one of the input requirement files
// changes. It watches the parent directories rather than the files
// themselves so that editors replacing files via rename are still seen.
// The loop ends when ctx is cancelled.
func (c *CLI) watchLoop(ctx context.Context, opts *findOptions, cfg config.Config, reqFiles []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(reqFiles))
	for _, file := range reqFiles {
		abs, err := filepath.Abs(file)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "resolve path %s", file)
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
		}
	}

	c.Logger.Info("Watching for changes", "files", len(watched))

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			c.Logger.Info("Requirement files changed, re-running discovery")
			if err := c.findOnce(ctx, opts, cfg, reqFiles); err != nil {
				// Keep watching; a broken intermediate save should not
				// kill the loop.
				c.Logger.Error("Discovery failed", "err", err)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Error("Watcher error", "err", watchErr)
		}
	}
}
