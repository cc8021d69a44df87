package dto

import "time"

type StartOutput struct {
	Run       uint64
	StartedAt time.Time
	Subject   string
	Restarted bool
}

type RegisterActionInput struct {
	ActionID string
	Timed    bool
}

type StateOutput struct {
	ID             string
	Name           string
	IsActive       bool
	ElapsedSeconds int
}

type ActionOutput struct {
	ID             string
	Name           string
	Count          int
	IsTiming       bool
	ElapsedSeconds int
}

type LogEntryOutput struct {
	Timestamp time.Time
	Message   string
	Type      string
}

type EngagementOutput struct {
	Timestamp time.Time
	Level     string
	Label     string
}

type NoteOutput struct {
	Timestamp time.Time
	Text      string
}

// ViewOutput is a copy of the observable session state. Lists are
// newest-first where the session keeps them that way.
type ViewOutput struct {
	Phase            string
	Active           bool
	Started          bool
	Run              uint64
	Subject          string
	StartTime        time.Time
	ElapsedSeconds   int
	ElapsedFormatted string
	States           []StateOutput
	Actions          []ActionOutput
	Log              []LogEntryOutput
	Engagements      []EngagementOutput
	Notes            []NoteOutput
}
