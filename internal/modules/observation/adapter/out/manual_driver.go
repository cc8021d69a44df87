package out

import (
	"sync"

	obsout "chronos/internal/modules/observation/port/out"
)

// ManualDriver fires ticks only when Fire is called. Replays use it to run a
// session on virtual time.
type ManualDriver struct {
	mu      sync.Mutex
	running bool
	run     uint64
	tick    func(uint64)
	starts  int
}

func NewManualDriver() *ManualDriver {
	return &ManualDriver{}
}

var _ obsout.TickDriver = (*ManualDriver)(nil)

func (d *ManualDriver) Start(run uint64, tick func(run uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = true
	d.run = run
	d.tick = tick
	d.starts++
}

func (d *ManualDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
	d.tick = nil
}

// Fire delivers n ticks and returns how many were delivered.
func (d *ManualDriver) Fire(n int) int {
	delivered := 0
	for i := 0; i < n; i++ {
		d.mu.Lock()
		running, run, tick := d.running, d.run, d.tick
		d.mu.Unlock()
		if !running || tick == nil {
			break
		}
		tick(run)
		delivered++
	}
	return delivered
}

func (d *ManualDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Starts counts Start calls, for asserting restart behaviour.
func (d *ManualDriver) Starts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts
}
