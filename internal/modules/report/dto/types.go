package dto

import "time"

type SummaryOutput struct {
	Subject       string
	StartTime     time.Time
	EndTime       time.Time
	TotalDuration string
	Notes         int
	Engagements   int
	Text          string
}

type DownloadInput struct {
	Format string
}

type DownloadOutput struct {
	ID     string
	Format string
	Path   string
}

type ArchivedReportOutput struct {
	ID              string
	Format          string
	Path            string
	Subject         string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Duration        string
	CreatedAt       time.Time
}

type ArchivedReportDetail struct {
	Report  ArchivedReportOutput
	Content string
}
