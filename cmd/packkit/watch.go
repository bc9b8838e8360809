package main

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/packkit/config"
)

// watchDebounce coalesces bursts of filesystem events into one re-pack.
const watchDebounce = 500 * time.Millisecond

// watchAndPack runs the pipeline once, then re-runs it whenever a file under
// any root changes. Events for the output files themselves are ignored so a
// pack does not retrigger itself.
func watchAndPack(ctx context.Context, cfg config.Config, roots []string, logger *slog.Logger) error {
	if err := runPack(ctx, cfg, roots, logger); err != nil {
		logger.Error("initial pack failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}
	logger.Info("watching for changes", "roots", strings.Join(roots, ", "))

	outputBase := strings.TrimSuffix(cfg.OutputPath(), filepath.Ext(cfg.OutputPath()))

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), filepath.Base(outputBase)) {
				continue
			}
			// New directories need their own watches.
			if event.Has(fsnotify.Create) {
				_ = addRecursive(watcher, event.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-fire:
			timer = nil
			logger.Info("change detected, re-packing")
			if err := runPack(ctx, cfg, roots, logger); err != nil {
				logger.Error("pack failed", "error", err)
			}
		}
	}
}

// addRecursive watches a directory and all subdirectories. Non-directories
// are ignored; fsnotify watches are per-directory.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries just aren't watched
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == ".git" || name == "node_modules" {
			return filepath.SkipDir
		}
		_ = watcher.Add(p)
		return nil
	})
}
