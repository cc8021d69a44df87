package domain

import "time"

type StateLine struct {
	Name           string
	ElapsedSeconds int
}

type ActionLine struct {
	Name           string
	Count          int
	ElapsedSeconds int
}

type EngagementLine struct {
	Timestamp time.Time
	Level     string
	Label     string
}

type NoteLine struct {
	Timestamp time.Time
	Text      string
}

type LogLine struct {
	Timestamp time.Time
	Message   string
}

// Snapshot freezes a session for reporting. Engagements, Notes and FullLog
// keep the session's newest-first order.
type Snapshot struct {
	Subject        string
	StartTime      time.Time
	EndTime        time.Time
	ElapsedSeconds int
	TotalDuration  string
	States         []StateLine
	Actions        []ActionLine
	Engagements    []EngagementLine
	Notes          []NoteLine
	FullLog        []LogLine
}

// HasData is false for the zero snapshot of a session that never started.
func (s Snapshot) HasData() bool {
	return !s.StartTime.IsZero()
}
