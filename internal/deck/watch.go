// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
)

/*
Watch republishes deck files in dir whenever they are created or written.

It blocks until ctx is cancelled or the underlying watcher fails. A file
that does not parse is logged and skipped; the catalogue keeps the last
good version. Removing a file does not unpublish its deck, since open
reader sessions may still reference it.
*/
func (service *Service) Watch(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("deck: watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("deck: %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("deck: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("deck: watch %s: %w", dir, err)
	}
	service.logger.Info("deck_watch_started", slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsDeckFile(event.Name) || !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
				continue
			}
			service.reload(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			service.logger.Error("deck_watch_error", slog.String("error", err.Error()))
		}
	}
}

func (service *Service) reload(ctx context.Context, path string) {
	d, err := LoadFile(path)
	if err != nil {
		service.logger.Warn("deck_reload_rejected",
			slog.String("file", path),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := service.persist(ctx, d); err != nil {
		service.logger.Error("deck_reload_failed",
			slog.String("slug", d.Slug),
			slog.Any("error", err),
		)
		return
	}

	service.logger.Info("deck_reloaded", slog.String("slug", d.Slug), slog.String("file", path))
}
