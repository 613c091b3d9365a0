//go:build linux

package devinput

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls found for every event node created in dir until ctx ends.
// Each call happens settle after the node appeared so udev can apply its
// permissions first. Watch returns once the watch is installed.
func Watch(ctx context.Context, dir string, settle time.Duration, found func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) || !IsEventNode(ev.Name) {
					continue
				}
				path := ev.Name
				time.AfterFunc(settle, func() {
					if ctx.Err() == nil {
						found(path)
					}
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger().Warn().Err(err).Str("dir", dir).Msg("input directory watch error")
			}
		}
	}()
	return nil
}
