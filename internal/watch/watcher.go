// Package watch feeds newly created files through the sort engine as they
// appear. Events are handled sequentially on one goroutine: watch mode adds
// no concurrency to the per-file sorting semantics.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tiedye/internal/log"
	"tiedye/internal/sort"
	"tiedye/pkg/types"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one directory and sorts files created in it.
type Watcher struct {
	root      string
	engine    *sort.Engine
	fsWatcher *fsnotify.Watcher
	onOutcome func(types.MoveOutcome)
}

// New creates a watcher over root. onOutcome is invoked for every processed
// file; it may be nil.
func New(root string, engine *sort.Engine, onOutcome func(types.MoveOutcome)) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(abs); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}

	return &Watcher{root: abs, engine: engine, fsWatcher: fsWatcher, onOutcome: onOutcome}, nil
}

// Run processes events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	log.Info("watching %s", w.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) {
		return
	}

	// Skip temporary and hidden files.
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return
	}

	// The file may already be gone, or be a freshly created directory.
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return
	}

	outcome := w.engine.SortPath(w.root, event.Name)
	if w.onOutcome != nil {
		w.onOutcome(outcome)
	}
}
