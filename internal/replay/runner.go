package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	obsdto "chronos/internal/modules/observation/dto"
	"chronos/internal/platform/logging"
	"chronos/internal/ui/gesture"
)

type Observation interface {
	Start(ctx context.Context) (obsdto.StartOutput, error)
	Stop(ctx context.Context) (bool, error)
	SetSubject(ctx context.Context, subject string) error
	ToggleState(ctx context.Context, stateID string) (bool, error)
	RegisterAction(ctx context.Context, actionID string, timed bool) (bool, error)
	LogEngagement(ctx context.Context, level string) (bool, error)
	AddNote(ctx context.Context, text string) (bool, error)
}

// VirtualClock is moved forward by ticks and waits.
type VirtualClock interface {
	Now() time.Time
	Advance(d time.Duration) time.Time
}

// TickSource delivers ticks to the running session.
type TickSource interface {
	Fire(n int) int
}

type Result struct {
	Steps   int
	Ticks   int
	Ignored int
}

type Runner struct {
	observation Observation
	clock       VirtualClock
	ticks       TickSource
	gestures    *gesture.Detector
	tick        time.Duration
	log         hclog.Logger
}

// NewRunner advances clock by tick for every delivered tick. press and
// release steps go through a gesture detector with the given threshold.
func NewRunner(observation Observation, clock VirtualClock, ticks TickSource, tick, longPress time.Duration, logger hclog.Logger) *Runner {
	if tick <= 0 {
		tick = time.Second
	}
	return &Runner{
		observation: observation,
		clock:       clock,
		ticks:       ticks,
		gestures:    gesture.NewDetector(longPress),
		tick:        tick,
		log:         logging.OrNull(logger).Named("replay"),
	}
}

func (r *Runner) Run(ctx context.Context, script Script) (Result, error) {
	var res Result
	if script.Subject != "" {
		if err := r.observation.SetSubject(ctx, script.Subject); err != nil {
			return res, err
		}
	}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		applied, err := r.apply(ctx, step, &res)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if !applied {
			res.Ignored++
			r.log.Debug("step ignored", "index", i+1, "op", string(step.Op), "arg", step.Arg)
		}
		res.Steps++
	}
	return res, nil
}

func (r *Runner) apply(ctx context.Context, step Step, res *Result) (bool, error) {
	switch step.Op {
	case OpStart:
		_, err := r.observation.Start(ctx)
		return err == nil, err
	case OpStop:
		r.gestures.Cancel()
		return r.observation.Stop(ctx)
	case OpSubject:
		return true, r.observation.SetSubject(ctx, step.Arg)
	case OpToggle:
		return r.observation.ToggleState(ctx, step.Arg)
	case OpTap:
		return r.observation.RegisterAction(ctx, step.Arg, false)
	case OpTime:
		return r.observation.RegisterAction(ctx, step.Arg, true)
	case OpPress:
		r.gestures.Press(step.Arg, r.clock.Now())
		return true, nil
	case OpRelease:
		g, ok := r.gestures.Release(step.Arg, r.clock.Now())
		if !ok {
			return false, nil
		}
		return r.observation.RegisterAction(ctx, g.ID, g.Long)
	case OpEngagement:
		return r.observation.LogEngagement(ctx, step.Arg)
	case OpNote:
		return r.observation.AddNote(ctx, step.Arg)
	case OpTick:
		for i := 0; i < step.Count; i++ {
			r.clock.Advance(r.tick)
			if err := r.pollGestures(ctx); err != nil {
				return false, err
			}
			res.Ticks += r.ticks.Fire(1)
		}
		return true, nil
	case OpWait:
		r.clock.Advance(step.Wait)
		return true, r.pollGestures(ctx)
	}
	return false, fmt.Errorf("unknown step %q", step.Op)
}

// pollGestures fires long presses of keys held past the threshold.
func (r *Runner) pollGestures(ctx context.Context) error {
	for _, g := range r.gestures.Poll(r.clock.Now()) {
		if _, err := r.observation.RegisterAction(ctx, g.ID, g.Long); err != nil {
			return err
		}
	}
	return nil
}
