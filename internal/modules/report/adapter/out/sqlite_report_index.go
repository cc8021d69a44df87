package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chronos/internal/modules/report/domain"
	reportout "chronos/internal/modules/report/port/out"
	apperrors "chronos/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// Fixed width keeps lexical order equal to time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteReportIndex struct {
	db *sql.DB
}

func NewSQLiteReportIndex(dbPath string) (reportout.ArchiveIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteReportIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

func (s *SQLiteReportIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS reports (
  id TEXT PRIMARY KEY,
  format TEXT NOT NULL,
  path TEXT NOT NULL,
  subject TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create reports table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at)`); err != nil {
		return fmt.Errorf("create reports index: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_reports_path ON reports(path)`); err != nil {
		return fmt.Errorf("create reports path index: %w", err)
	}
	return nil
}

// Record stores report. Rows are unique per path: an older row pointing at
// report.Path is dropped.
func (s *SQLiteReportIndex) Record(ctx context.Context, report domain.ArchivedReport) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record report: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM reports WHERE path = ? AND id <> ?`, report.Path, report.ID); err != nil {
		return fmt.Errorf("drop overwritten report: %w", err)
	}
	const stmt = `
INSERT INTO reports (id, format, path, subject, started_at, ended_at, duration_seconds, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  format=excluded.format,
  path=excluded.path,
  subject=excluded.subject,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  duration_seconds=excluded.duration_seconds,
  created_at=excluded.created_at;
`
	_, err = tx.ExecContext(ctx, stmt,
		report.ID,
		string(report.Format),
		report.Path,
		report.Subject,
		report.StartedAt.UTC().Format(timestampLayout),
		report.EndedAt.UTC().Format(timestampLayout),
		report.DurationSeconds,
		report.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit record report: %w", err)
	}
	return nil
}

// List returns reports newest first.
func (s *SQLiteReportIndex) List(ctx context.Context) ([]domain.ArchivedReport, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, format, path, subject, started_at, ended_at, duration_seconds, created_at
FROM reports
ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	out := []domain.ArchivedReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

func (s *SQLiteReportIndex) Get(ctx context.Context, id string) (domain.ArchivedReport, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, format, path, subject, started_at, ended_at, duration_seconds, created_at
FROM reports
WHERE id = ?`, id)
	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ArchivedReport{}, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.ArchivedReport{}, err
	}
	return report, nil
}

func (s *SQLiteReportIndex) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (domain.ArchivedReport, error) {
	var (
		report                        domain.ArchivedReport
		format, started, ended, added string
	)
	if err := row.Scan(&report.ID, &format, &report.Path, &report.Subject, &started, &ended, &report.DurationSeconds, &added); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ArchivedReport{}, err
		}
		return domain.ArchivedReport{}, fmt.Errorf("scan report: %w", err)
	}
	report.Format = domain.Format(format)
	var err error
	if report.StartedAt, err = time.Parse(timestampLayout, started); err != nil {
		return domain.ArchivedReport{}, fmt.Errorf("parse started_at: %w", err)
	}
	if report.EndedAt, err = time.Parse(timestampLayout, ended); err != nil {
		return domain.ArchivedReport{}, fmt.Errorf("parse ended_at: %w", err)
	}
	if report.CreatedAt, err = time.Parse(timestampLayout, added); err != nil {
		return domain.ArchivedReport{}, fmt.Errorf("parse created_at: %w", err)
	}
	return report, nil
}
