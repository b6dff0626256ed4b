// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taxsetu/waflow/internal/log"
)

// WatchDelivery watches the YAML overlay file and invokes apply with the
// new delivery tunables whenever the file changes and validates. It
// returns when ctx is cancelled. Invalid overlays are logged and skipped;
// the last good config stays active.
func WatchDelivery(ctx context.Context, path string, current DeliveryConfig, apply func(DeliveryConfig)) error {
	logger := log.WithComponent("config-reload")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors replace files via rename, which drops
	// a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	target := filepath.Clean(path)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(200 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("config watcher error")
		case <-debounce:
			debounce = nil
			next, err := LoadDeliveryFile(path, current)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("ignoring invalid config overlay")
				continue
			}
			if next == current {
				continue
			}
			logger.Info().
				Int("per_minute", next.PerMinute).
				Int("per_day", next.PerDay).
				Float64("global_rate", next.GlobalRate).
				Int("max_attempts", next.MaxAttempts).
				Msg("delivery config reloaded")
			current = next
			apply(next)
		}
	}
}
