package service

import (
	"sync"

	"chronos/internal/modules/observation/domain"
	"chronos/internal/platform/clock"
)

// Engine owns the observation session and serializes every mutation,
// including ticks delivered from the driver goroutine.
type Engine struct {
	mu      sync.Mutex
	clock   clock.Clock
	session *domain.Session
}

func NewEngine(clk clock.Clock, states, actions []domain.Template, subject string) *Engine {
	if len(states) == 0 {
		states = domain.DefaultStateTemplates()
	}
	if len(actions) == 0 {
		actions = domain.DefaultActionTemplates()
	}
	return &Engine{clock: clk, session: domain.NewSession(states, actions, subject)}
}

// StartSession resets the session and returns the new run number together
// with whether an active session was discarded.
func (e *Engine) StartSession() (run uint64, restarted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	restarted = e.session.Active()
	e.session.Start(e.clock.Now())
	return e.session.Run, restarted
}

func (e *Engine) StopSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Stop(e.clock.Now())
}

func (e *Engine) SetSubject(subject string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.SetSubject(subject)
}

// ToggleState reports false for unknown ids; callers treat that as a no-op.
func (e *Engine) ToggleState(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.ToggleState(id, e.clock.Now())
}

func (e *Engine) RegisterAction(id string, timed bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.RegisterAction(id, timed, e.clock.Now())
}

func (e *Engine) LogEngagement(level domain.EngagementLevel) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.LogEngagement(level, e.clock.Now())
}

func (e *Engine) AddNote(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.AddNote(text, e.clock.Now())
}

// Tick advances the current run by one second.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Tick()
}

// TickRun advances only if run is still the current active run, so a tick
// scheduled before a stop or restart is dropped.
func (e *Engine) TickRun(run uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if run != e.session.Run {
		return false
	}
	return e.session.Tick()
}

// View returns a deep copy of the observable state.
func (e *Engine) View() domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}
