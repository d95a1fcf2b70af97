package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/seqscope/internal/render/core"
)

// PaletteWatcher reloads the palette when its file changes on disk.
// The containing directory is watched rather than the file itself, so
// editors that replace the file on save keep triggering reloads.
type PaletteWatcher struct {
	fs       *fsnotify.Watcher
	path     string
	onReload func(core.ColorMap)
	onError  func(error)
	done     chan struct{}
}

// WatchPalette starts watching a palette file. onReload receives every
// successfully parsed palette; onError receives watch and parse
// failures and may be nil.
func WatchPalette(path string, onReload func(core.ColorMap), onError func(error)) (*PaletteWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create palette watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &PaletteWatcher{
		fs:       fs,
		path:     filepath.Clean(path),
		onReload: onReload,
		onError:  onError,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *PaletteWatcher) run() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			m, err := LoadPalette(w.path)
			if err != nil {
				w.fail(err)
				continue
			}
			w.onReload(m)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.fail(err)
		case <-w.done:
			return
		}
	}
}

func (w *PaletteWatcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops the watcher.
func (w *PaletteWatcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
