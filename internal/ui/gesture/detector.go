// Package gesture turns press and release events on action keys into taps
// and long presses.
package gesture

import (
	"sync"
	"time"
)

// DefaultThreshold is the hold time that makes a press a long press.
const DefaultThreshold = 500 * time.Millisecond

// Resolution is a finished gesture. Long reports a timed gesture.
type Resolution struct {
	ID   string
	Long bool
}

type press struct {
	at    time.Time
	fired bool
}

// Detector resolves every gesture exactly once: Poll may fire a long press
// while the key is still held, after which the release is swallowed.
type Detector struct {
	mu        sync.Mutex
	threshold time.Duration
	pressed   map[string]press
}

func NewDetector(threshold time.Duration) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{threshold: threshold, pressed: map[string]press{}}
}

func (d *Detector) Threshold() time.Duration { return d.threshold }

// Press starts tracking id. A repeated press of a held key keeps the first
// timestamp, so key autorepeat does not restart the hold.
func (d *Detector) Press(id string, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, held := d.pressed[id]; held {
		return
	}
	d.pressed[id] = press{at: now}
}

// Release ends the gesture on id. ok is false when id was not pressed or
// when Poll already resolved it.
func (d *Detector) Release(id string, now time.Time) (Resolution, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, held := d.pressed[id]
	if !held {
		return Resolution{}, false
	}
	delete(d.pressed, id)
	if p.fired {
		return Resolution{}, false
	}
	return Resolution{ID: id, Long: now.Sub(p.at) >= d.threshold}, true
}

// Poll fires long presses for keys held past the threshold.
func (d *Detector) Poll(now time.Time) []Resolution {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Resolution
	for id, p := range d.pressed {
		if p.fired || now.Sub(p.at) < d.threshold {
			continue
		}
		p.fired = true
		d.pressed[id] = p
		out = append(out, Resolution{ID: id, Long: true})
	}
	return out
}

// Held reports whether id is currently pressed.
func (d *Detector) Held(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, held := d.pressed[id]
	return held
}

// Cancel drops every pending press without resolving it.
func (d *Detector) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pressed = map[string]press{}
}
