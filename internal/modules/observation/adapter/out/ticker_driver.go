package out

import (
	"sync"
	"time"

	obsout "chronos/internal/modules/observation/port/out"
)

// TickerDriver delivers ticks from one goroutine backed by a time.Ticker.
type TickerDriver struct {
	interval time.Duration

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewTickerDriver(interval time.Duration) obsout.TickDriver {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerDriver{interval: interval}
}

func (d *TickerDriver) Start(run uint64, tick func(run uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.stopCh = make(chan struct{})
	d.doneCh = make(chan struct{})
	go d.loop(run, tick, d.stopCh, d.doneCh)
}

// Stop tears the loop down and waits for it to exit.
func (d *TickerDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *TickerDriver) stopLocked() {
	if d.stopCh == nil {
		return
	}
	close(d.stopCh)
	<-d.doneCh
	d.stopCh = nil
	d.doneCh = nil
}

func (d *TickerDriver) loop(run uint64, tick func(uint64), stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// A tick and a stop can be ready together; stop wins.
			select {
			case <-stopCh:
				return
			default:
			}
			tick(run)
		}
	}
}
