package logging

import (
	"sync"
	"time"
)

// DefaultDedupeWindow is how long a repeated key is suppressed.
const DefaultDedupeWindow = 60 * time.Second

// Deduper suppresses repeated keys seen within a sliding window. It is safe for
// concurrent use.
type Deduper struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	seen   map[string]time.Time
}

// NewDeduper creates a deduper with the given window. A nil clock uses
// time.Now; a non-positive window uses DefaultDedupeWindow.
func NewDeduper(window time.Duration, clock func() time.Time) *Deduper {
	if window <= 0 {
		window = DefaultDedupeWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &Deduper{
		window: window,
		now:    clock,
		seen:   make(map[string]time.Time),
	}
}

// IsDuplicate reports whether key was last seen less than one window before
// ts. It always records ts as the key's last-seen time.
func (d *Deduper) IsDuplicate(key string, ts time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	last, ok := d.seen[key]
	d.seen[key] = ts
	if !ok {
		return false
	}
	return ts.Sub(last) < d.window
}

// Seen is IsDuplicate at the current clock time.
func (d *Deduper) Seen(key string) bool {
	return d.IsDuplicate(key, d.now())
}

// Sweep evicts keys whose window has expired at now and returns how many were
// removed.
func (d *Deduper) Sweep(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for k, last := range d.seen {
		if now.Sub(last) >= d.window {
			delete(d.seen, k)
			removed++
		}
	}
	return removed
}

// Now returns the deduper's clock time.
func (d *Deduper) Now() time.Time {
	return d.now()
}

// Len returns the number of tracked keys.
func (d *Deduper) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Window returns the suppression window.
func (d *Deduper) Window() time.Duration {
	return d.window
}

// Reset forgets every key.
func (d *Deduper) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[string]time.Time)
}
