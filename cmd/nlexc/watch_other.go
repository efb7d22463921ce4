//go:build !linux
// +build !linux

package main

import (
	"context"
	"os"
	"time"
)

// watcher polls the modification time and size of a file.
//
type watcher struct {
	path string
	mod  time.Time
	size int64
}

func newWatcher(path string) (*watcher, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &watcher{path: path, mod: fi.ModTime(), size: fi.Size()}, nil
}

// run calls onChange after the file has changed, until ctx is done.
//
func (w *watcher) run(ctx context.Context, onChange func()) error {
	d := &debouncer{f: onChange}
	defer d.stop()
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
		fi, err := os.Stat(w.path)
		if err != nil {
			// being replaced
			continue
		}
		if !fi.ModTime().Equal(w.mod) || fi.Size() != w.size {
			w.mod, w.size = fi.ModTime(), fi.Size()
			d.trigger()
		}
	}
}
