package out

import (
	"context"

	"chronos/internal/modules/report/domain"
)

// SessionSource reads the live observation session. A session that never
// started yields a snapshot without a start time.
type SessionSource interface {
	Current(ctx context.Context) (domain.Snapshot, error)
}

type Clipboard interface {
	WriteText(text string) error
}

// ReportWriter persists one rendered export and returns its path.
type ReportWriter interface {
	Write(ctx context.Context, export domain.Export) (string, error)
}

type ReportReader interface {
	Read(ctx context.Context, path string) (string, error)
}

type ArchiveIndex interface {
	Record(ctx context.Context, report domain.ArchivedReport) error
	List(ctx context.Context) ([]domain.ArchivedReport, error)
	Get(ctx context.Context, id string) (domain.ArchivedReport, error)
	Close() error
}
