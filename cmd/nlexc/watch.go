package main

import (
	"sync"
	"time"
)

// debounce is the delay between the last change of a file and the call to
// the change handler.
//
var debounce = 300 * time.Millisecond

type debouncer struct {
	mu sync.Mutex
	t  *time.Timer
	f  func()
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.t != nil {
		d.t.Stop()
	}
	d.t = time.AfterFunc(debounce, d.f)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.t != nil {
		d.t.Stop()
	}
}
