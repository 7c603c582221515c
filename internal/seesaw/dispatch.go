package seesaw

import (
	"context"
	"sync"
)

// dispatcher delivers presenter and log calls in the order they were
// posted. Callers post while holding the controller lock, so delivery
// order matches the order of state changes. A call posted from inside a
// delivery (a presenter that calls back into the controller) is queued
// and delivered by the goroutine already running the queue.
type dispatcher struct {
	mu      sync.Mutex
	queue   []func()
	running bool
	idle    chan struct{} // open while busy, nil when idle
}

func (d *dispatcher) post(fns ...func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(fns) == 0 {
		return
	}
	if d.idle == nil {
		d.idle = make(chan struct{})
	}
	d.queue = append(d.queue, fns...)
}

// run drains the queue unless another goroutine is already doing so.
func (d *dispatcher) run() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	for len(d.queue) > 0 {
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()
		fn()
		d.mu.Lock()
	}
	d.running = false
	if d.idle != nil {
		close(d.idle)
		d.idle = nil
	}
	d.mu.Unlock()
}

// wait blocks until everything posted so far has been delivered.
func (d *dispatcher) wait(ctx context.Context) error {
	d.mu.Lock()
	ch := d.idle
	d.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
