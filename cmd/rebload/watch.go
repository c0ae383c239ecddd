package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rhencke/rebol/pkg/rebol/load"
	"github.com/rhencke/rebol/pkg/rebol/logging"
	"github.com/rhencke/rebol/pkg/rebol/scriptindex"
	"github.com/rhencke/rebol/pkg/rebol/value"
)

// watcher re-scans scripts as they change on disk, printing the molded
// result and keeping the script index current.
type watcher struct {
	fw   *fsnotify.Watcher
	ix   *scriptindex.Index
	cfg  *Config
	log  logging.Logger
	errw io.Writer

	mu         sync.Mutex
	lastChange time.Time
}

func newWatcher(cfg *Config, dbPath string, dirs []string, log logging.Logger, errw io.Writer) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ix, err := scriptindex.Open(dbPath, log)
	if err != nil {
		fw.Close()
		return nil, err
	}

	w := &watcher{fw: fw, ix: ix, cfg: cfg, log: log, errw: errw}
	for _, dir := range dirs {
		if err := w.watchRecursive(dir); err != nil {
			w.Close()
			return nil, err
		}
		log.LogLine("watching", dir)
	}
	return w, nil
}

func (w *watcher) Close() error {
	w.ix.Close()
	return w.fw.Close()
}

func (w *watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(path)
		}
		return nil
	})
}

// Run blocks until the context ends, handling change events.
func (w *watcher) Run(ctx context.Context) error {
	const debounce = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				if event.Has(fsnotify.Remove) {
					w.ix.Remove(event.Name)
				}
				continue
			}

			w.mu.Lock()
			if time.Since(w.lastChange) < debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange = time.Now()
			w.mu.Unlock()

			w.handleChange(event.Name)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.errw, "watch error: %v\n", err)
		}
	}
}

func (w *watcher) handleChange(path string) {
	if !slices.Contains(w.cfg.Extensions, filepath.Ext(path)) {
		return
	}

	script, err := load.File(path, load.Options{Relax: true})
	if err != nil {
		fmt.Fprintf(w.errw, "%s: %v\n", path, err)
		return
	}

	w.log.LogLine("reloaded", path)
	w.log.LogLine(value.MoldArray(script.Body))

	if err := w.ix.AddScript(path, script); err != nil {
		fmt.Fprintf(w.errw, "%s: %v\n", path, err)
	}
}
