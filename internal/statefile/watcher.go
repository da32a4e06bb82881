// File: internal/statefile/watcher.go (complete file)

package statefile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/baptistax/nettxt/internal/tracker"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a state file into a table whenever it changes on disk.
// The parent directory is watched so atomic rename-over saves are seen.
type Watcher struct {
	path     string
	table    *tracker.Table
	log      *slog.Logger
	Debounce time.Duration

	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)
}

func NewWatcher(path string, table *tracker.Table, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		table:    table,
		log:      log.With(slog.String("component", "statefile")),
		Debounce: defaultDebounce,
	}
}

// Run blocks until ctx is done. A reload that fails keeps the previous
// table contents and is logged.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("state watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("state watcher: watch %q: %w", filepath.Dir(w.path), err)
	}
	w.log.Info("watching state file", "path", w.path)

	debounce := time.NewTimer(w.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				debounce.Reset(w.Debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("state watcher error", "error", err)

		case <-debounce.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := LoadInto(w.path, w.table)
	if err != nil {
		w.log.Warn("state reload failed, keeping previous state", "error", err)
	} else {
		nets, clis := w.table.Len()
		w.log.Debug("state reloaded", "networks", nets, "clients", clis)
	}
	if w.OnReload != nil {
		w.OnReload(err)
	}
}
