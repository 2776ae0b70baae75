package config

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// Watcher reloads the configuration when the config file changes on disk and
// hands the validated result to a callback. Invalid edits are logged and
// skipped; the running configuration is never partially applied.
type Watcher struct {
	path     string
	onChange func(*Config)
	log      logger.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given config file. An empty path
// (no config file resolved, defaults-only run) returns a nil watcher and no
// error; callers treat nil as "nothing to watch".
func NewWatcher(path string, onChange func(*Config), log logger.Logger) (*Watcher, error) {
	if path == "" {
		return nil, nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{path: path, onChange: onChange, log: log, watcher: fw}, nil
}

// Run processes file events until ctx is cancelled. Editors often emit bursts
// of Write/Create events for one save, so reloads are debounced.
func (w *Watcher) Run(ctx context.Context) {
	const debounce = 250 * time.Millisecond
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error(ctx, "config watcher error", err)
		case <-reload:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := LoadConfig()
	if err != nil {
		w.log.Error(ctx, "config reload rejected, keeping previous configuration", err,
			logger.Fields{"path": w.path})
		return
	}
	w.log.Info(ctx, "configuration reloaded", logger.Fields{"path": w.path})
	w.onChange(cfg)
}
