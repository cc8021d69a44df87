package domain

import "time"

type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case FormatText, FormatMarkdown:
		return Format(raw), true
	case "":
		return FormatText, true
	}
	return "", false
}

// Export is one rendered report handed to a writer.
type Export struct {
	ID       string
	Snapshot Snapshot
	Text     string
	FileName string
	At       time.Time
}

// ArchivedReport indexes a report that was written to disk.
type ArchivedReport struct {
	ID              string
	Format          Format
	Path            string
	Subject         string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	CreatedAt       time.Time
}
