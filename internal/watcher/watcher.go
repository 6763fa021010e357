// Package watcher re-runs a handler when images land in a directory.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lehigh-university-libraries/stickerkit/internal/stamp"
)

// Watcher monitors one directory for new or changed images
type Watcher struct {
	dir      string
	debounce time.Duration
	handle   func(dir string)
	watcher  *fsnotify.Watcher
}

// New creates a watcher for dir. handle runs on the watcher's goroutine once
// no image event has arrived for the debounce interval.
func New(dir string, debounce time.Duration, handle func(dir string)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		handle:   handle,
		watcher:  fsWatcher,
	}, nil
}

// IsImage reports whether name is a file the sticker loader can decode
func IsImage(name string) bool {
	return stamp.IsImageFile(name)
}

// Run processes events until ctx is cancelled, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	slog.Info("Watching folder", "dir", w.dir, "debounce", w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !IsImage(event.Name) {
				continue
			}

			slog.Debug("Image changed", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.handle(w.dir)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}
