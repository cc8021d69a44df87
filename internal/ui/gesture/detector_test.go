package gesture

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestShortPressIsTap(t *testing.T) {
	t.Parallel()
	d := NewDetector(0)
	if d.Threshold() != DefaultThreshold {
		t.Fatalf("expected default threshold, got %s", d.Threshold())
	}
	d.Press("praise", t0)
	res, ok := d.Release("praise", t0.Add(499*time.Millisecond))
	if !ok || res.Long || res.ID != "praise" {
		t.Fatalf("expected tap, got %+v ok=%v", res, ok)
	}
	if d.Held("praise") {
		t.Fatalf("release must clear the press")
	}
}

func TestHoldPastThresholdIsLongPress(t *testing.T) {
	t.Parallel()
	d := NewDetector(500 * time.Millisecond)
	d.Press("patrol", t0)
	res, ok := d.Release("patrol", t0.Add(500*time.Millisecond))
	if !ok || !res.Long {
		t.Fatalf("expected long press, got %+v ok=%v", res, ok)
	}
}

func TestPollFiresOnceAndSwallowsRelease(t *testing.T) {
	t.Parallel()
	d := NewDetector(500 * time.Millisecond)
	d.Press("patrol", t0)
	if got := d.Poll(t0.Add(100 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("poll before threshold must not fire: %+v", got)
	}
	got := d.Poll(t0.Add(600 * time.Millisecond))
	if len(got) != 1 || got[0].ID != "patrol" || !got[0].Long {
		t.Fatalf("expected one long press, got %+v", got)
	}
	if again := d.Poll(t0.Add(time.Second)); len(again) != 0 {
		t.Fatalf("poll must fire only once per gesture: %+v", again)
	}
	if _, ok := d.Release("patrol", t0.Add(2*time.Second)); ok {
		t.Fatalf("release after a fired long press must not resolve again")
	}
}

func TestRepeatedPressKeepsFirstTimestamp(t *testing.T) {
	t.Parallel()
	d := NewDetector(500 * time.Millisecond)
	d.Press("open_q", t0)
	d.Press("open_q", t0.Add(400*time.Millisecond))
	res, ok := d.Release("open_q", t0.Add(550*time.Millisecond))
	if !ok || !res.Long {
		t.Fatalf("autorepeat must not restart the hold, got %+v", res)
	}
}

func TestReleaseWithoutPressAndCancel(t *testing.T) {
	t.Parallel()
	d := NewDetector(500 * time.Millisecond)
	if _, ok := d.Release("ghost", t0); ok {
		t.Fatalf("release without press must not resolve")
	}
	d.Press("praise", t0)
	d.Cancel()
	if d.Held("praise") || len(d.Poll(t0.Add(time.Second))) != 0 {
		t.Fatalf("cancel must drop pending presses")
	}
}
