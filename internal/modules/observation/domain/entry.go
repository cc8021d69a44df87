package domain

import "time"

// MaxLogEntries bounds the event log; older entries are dropped.
const MaxLogEntries = 50

type LogType string

const (
	LogState      LogType = "state"
	LogAction     LogType = "action"
	LogNote       LogType = "note"
	LogEngagement LogType = "engagement"
	LogSession    LogType = "session"
)

type LogEntry struct {
	Timestamp time.Time
	Message   string
	Type      LogType
}

type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "high"
	EngagementMedium EngagementLevel = "medium"
	EngagementLow    EngagementLevel = "low"
)

var engagementLabels = map[EngagementLevel]string{
	EngagementHigh:   "高",
	EngagementMedium: "中",
	EngagementLow:    "低",
}

// ParseEngagementLevel accepts the english level names and the 高/中/低 labels.
func ParseEngagementLevel(raw string) (EngagementLevel, bool) {
	for level, label := range engagementLabels {
		if raw == string(level) || raw == label {
			return level, true
		}
	}
	return "", false
}

func (l EngagementLevel) Valid() bool {
	_, ok := engagementLabels[l]
	return ok
}

// Label is the display form used in log messages and the TUI.
func (l EngagementLevel) Label() string {
	return engagementLabels[l]
}

type EngagementEntry struct {
	Timestamp time.Time
	Level     EngagementLevel
}

type NoteEntry struct {
	Timestamp time.Time
	Text      string
}

// PrependLog adds entry at the head of log and keeps at most MaxLogEntries.
func PrependLog(log []LogEntry, entry LogEntry) []LogEntry {
	keep := len(log)
	if keep > MaxLogEntries-1 {
		keep = MaxLogEntries - 1
	}
	out := make([]LogEntry, 0, keep+1)
	out = append(out, entry)
	return append(out, log[:keep]...)
}
