package ingest

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wonny/runboard/pkg/logger"
)

// DebounceDelay coalesces the burst of events an editor save produces
const DebounceDelay = 250 * time.Millisecond

// Watch monitors path and calls onChange with the changed file name after
// writes settle. When path is a directory every file inside it is reported;
// when path is a file its parent directory is watched so atomic saves that
// replace the inode are still seen. Watch runs until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(name string), log *logger.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir, only := path, ""
	if st, err := os.Stat(path); err != nil || !st.IsDir() {
		dir, only = filepath.Dir(path), filepath.Clean(path)
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	log.WithField("path", path).Info("Watching roster files for changes")

	var (
		timer *time.Timer
		fire  = make(chan string, 1)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(event.Name)
			if only != "" && name != only {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceDelay, func() {
				select {
				case fire <- name:
				default:
				}
			})

		case name := <-fire:
			log.WithField("file", name).Info("Roster file changed")
			onChange(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("Roster watcher error")
		}
	}
}

// WatchCSV reloads the active selection whenever its CSV file changes
func (l *Loader) WatchCSV(ctx context.Context, src *CSVSource) error {
	dir := src.Dir
	if dir == "" {
		dir = "."
	}
	return Watch(ctx, dir, func(name string) {
		if name != filepath.Clean(src.Path(l.Selection().Year)) {
			return
		}
		if _, err := l.ReloadCurrent(ctx); err != nil {
			l.logger.WithError(err).Warn("Reload after file change failed, keeping previous generation")
		}
	}, l.logger)
}
