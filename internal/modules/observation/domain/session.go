package domain

import (
	"strings"
	"time"
)

// Session is the single observation session aggregate. It is not safe for
// concurrent use; the engine serializes access.
type Session struct {
	Phase          Phase
	Run            uint64
	Subject        string
	StartTime      time.Time
	ElapsedSeconds int
	States         []TeachingState
	Actions        []TeachingAction
	Log            []LogEntry
	Engagements    []EngagementEntry
	Notes          []NoteEntry

	stateTemplates  []Template
	actionTemplates []Template
}

// NewSession returns a not-started session whose catalogs come from the
// given templates.
func NewSession(states, actions []Template, subject string) *Session {
	s := &Session{
		Phase:           PhaseNotStarted,
		Subject:         subject,
		stateTemplates:  append([]Template(nil), states...),
		actionTemplates: append([]Template(nil), actions...),
	}
	s.reset()
	return s
}

func (s *Session) Active() bool { return s.Phase == PhaseActive }

// Started reports whether any session has ever been started.
func (s *Session) Started() bool { return !s.StartTime.IsZero() }

func (s *Session) reset() {
	s.StartTime = time.Time{}
	s.ElapsedSeconds = 0
	s.States = NewStates(s.stateTemplates)
	s.Actions = NewActions(s.actionTemplates)
	s.Log = nil
	s.Engagements = nil
	s.Notes = nil
}

// Start resets every collection and begins a new run. Starting while active
// discards the running session.
func (s *Session) Start(now time.Time) {
	s.reset()
	s.Run++
	s.StartTime = now
	s.Phase = PhaseActive
	s.appendLog(now, sessionStartedMessage(s.Subject), LogSession)
}

// Stop ends the active session and keeps its data for the summary.
func (s *Session) Stop(now time.Time) bool {
	if !s.Active() {
		return false
	}
	s.Phase = PhaseEnded
	s.appendLog(now, sessionStoppedMessage, LogSession)
	return true
}

// SetSubject only affects log messages of future starts.
func (s *Session) SetSubject(subject string) {
	s.Subject = subject
}

func (s *Session) ToggleState(id string, now time.Time) bool {
	for i := range s.States {
		state := &s.States[i]
		if state.ID != id {
			continue
		}
		s.appendLog(now, stateToggledMessage(state.Name, state.IsActive), LogState)
		state.IsActive = !state.IsActive
		return true
	}
	return false
}

// RegisterAction flips timing for a timed gesture and tallies otherwise.
func (s *Session) RegisterAction(id string, timed bool, now time.Time) bool {
	for i := range s.Actions {
		action := &s.Actions[i]
		if action.ID != id {
			continue
		}
		if timed {
			s.appendLog(now, actionTimingMessage(action.Name, action.IsTiming), LogAction)
			action.IsTiming = !action.IsTiming
		} else {
			s.appendLog(now, actionTallyMessage(action.Name), LogAction)
			action.Count++
		}
		return true
	}
	return false
}

func (s *Session) LogEngagement(level EngagementLevel, now time.Time) bool {
	if !s.Active() || !level.Valid() {
		return false
	}
	s.Engagements = append([]EngagementEntry{{Timestamp: now, Level: level}}, s.Engagements...)
	s.appendLog(now, engagementMessage(level), LogEngagement)
	return true
}

func (s *Session) AddNote(text string, now time.Time) bool {
	text = strings.TrimSpace(text)
	if !s.Active() || text == "" {
		return false
	}
	s.Notes = append([]NoteEntry{{Timestamp: now, Text: text}}, s.Notes...)
	s.appendLog(now, noteMessage(text), LogNote)
	return true
}

// Tick advances the session clock and every flagged state and action by one
// second. It is the only mutator of elapsed counters.
func (s *Session) Tick() bool {
	if !s.Active() {
		return false
	}
	s.ElapsedSeconds++
	for i := range s.States {
		if s.States[i].IsActive {
			s.States[i].ElapsedSeconds++
		}
	}
	for i := range s.Actions {
		if s.Actions[i].IsTiming {
			s.Actions[i].ElapsedSeconds++
		}
	}
	return true
}

func (s *Session) appendLog(now time.Time, message string, kind LogType) {
	s.Log = PrependLog(s.Log, LogEntry{Timestamp: now, Message: message, Type: kind})
}

// Clone returns a deep copy that shares no slices with s.
func (s *Session) Clone() Session {
	c := *s
	c.States = append([]TeachingState(nil), s.States...)
	c.Actions = append([]TeachingAction(nil), s.Actions...)
	c.Log = append([]LogEntry(nil), s.Log...)
	c.Engagements = append([]EngagementEntry(nil), s.Engagements...)
	c.Notes = append([]NoteEntry(nil), s.Notes...)
	c.stateTemplates = append([]Template(nil), s.stateTemplates...)
	c.actionTemplates = append([]Template(nil), s.actionTemplates...)
	return c
}
