package session

import (
	"sync"
	"time"
)

// flushFunc persists the latest pending state for one note id. It reads
// that state at fire time, so several schedules within the window collapse
// to a single write reflecting only the last edit.
type flushFunc func(noteID string)

// debouncer owns one cancellable timer per note id. A newer schedule for
// an id restarts its timer; ids never share timers, so edits to different
// notes never merge into one write.
type debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	flush  flushFunc
}

func newDebouncer(delay time.Duration, flush flushFunc) *debouncer {
	if delay <= 0 {
		delay = 400 * time.Millisecond
	}
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		flush:  flush,
	}
}

// SetDelay changes the window for subsequently armed timers.
func (d *debouncer) SetDelay(delay time.Duration) {
	if delay <= 0 {
		return
	}
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

// Schedule arms (or restarts) the timer for a note id.
func (d *debouncer) Schedule(noteID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[noteID]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[noteID] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, noteID)
		d.mu.Unlock()
		d.flush(noteID)
	})
}

// Cancel disarms the pending timer for a note id, if any. Used when the
// editing context for that note goes away.
func (d *debouncer) Cancel(noteID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[noteID]; ok {
		t.Stop()
		delete(d.timers, noteID)
	}
}

// FlushNow disarms the timer for a note id and runs its flush immediately
// when one was pending. Returns whether a flush ran.
func (d *debouncer) FlushNow(noteID string) bool {
	d.mu.Lock()
	t, ok := d.timers[noteID]
	if ok {
		t.Stop()
		delete(d.timers, noteID)
	}
	d.mu.Unlock()
	if ok {
		d.flush(noteID)
	}
	return ok
}

// CancelAll disarms every pending timer, e.g. on session shutdown.
func (d *debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
