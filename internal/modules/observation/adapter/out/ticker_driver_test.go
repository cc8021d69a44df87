package out

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerDriverStopsDeliveringAfterStop(t *testing.T) {
	t.Parallel()
	driver := NewTickerDriver(2 * time.Millisecond)
	var ticks atomic.Int64
	var lastRun atomic.Uint64
	driver.Start(7, func(run uint64) {
		lastRun.Store(run)
		ticks.Add(1)
	})
	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	driver.Stop()
	after := ticks.Load()
	if after < 3 {
		t.Fatalf("expected ticks before stop, got %d", after)
	}
	if lastRun.Load() != 7 {
		t.Fatalf("expected run 7, got %d", lastRun.Load())
	}
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Fatalf("tick delivered after Stop returned: %d -> %d", after, ticks.Load())
	}
	driver.Stop()
}

func TestTickerDriverRestartReplacesLoop(t *testing.T) {
	t.Parallel()
	driver := NewTickerDriver(2 * time.Millisecond)
	var firstRun, secondRun atomic.Int64
	driver.Start(1, func(uint64) { firstRun.Add(1) })
	driver.Start(2, func(uint64) { secondRun.Add(1) })
	frozen := firstRun.Load()
	deadline := time.Now().Add(2 * time.Second)
	for secondRun.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	driver.Stop()
	if firstRun.Load() != frozen {
		t.Fatalf("first loop kept ticking after restart")
	}
	if secondRun.Load() < 3 {
		t.Fatalf("second loop did not tick, got %d", secondRun.Load())
	}
}

func TestManualDriverFiresOnlyWhileRunning(t *testing.T) {
	t.Parallel()
	driver := NewManualDriver()
	if driver.Fire(3) != 0 {
		t.Fatalf("stopped driver must not fire")
	}
	var got []uint64
	driver.Start(4, func(run uint64) { got = append(got, run) })
	if driver.Fire(2) != 2 || len(got) != 2 || got[0] != 4 {
		t.Fatalf("unexpected fired runs %v", got)
	}
	driver.Stop()
	if driver.Fire(1) != 0 || driver.Running() || driver.Starts() != 1 {
		t.Fatalf("driver should be stopped after Stop")
	}
}
