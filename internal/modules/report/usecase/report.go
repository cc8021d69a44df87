package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"chronos/internal/modules/report/domain"
	"chronos/internal/modules/report/dto"
	reportin "chronos/internal/modules/report/port/in"
	reportout "chronos/internal/modules/report/port/out"
	"chronos/internal/modules/report/service"
	apperrors "chronos/internal/platform/errors"
	"chronos/internal/platform/id"
	"chronos/internal/platform/logging"
	"chronos/internal/platform/timefmt"
)

type Dependencies struct {
	Summary   *service.SummaryService
	Clipboard reportout.Clipboard
	Writers   map[domain.Format]reportout.ReportWriter
	Reader    reportout.ReportReader
	Archive   reportout.ArchiveIndex
	IDs       id.Generator
	Prefix    string
	Logger    hclog.Logger
}

type Interactor struct {
	summary   *service.SummaryService
	clipboard reportout.Clipboard
	writers   map[domain.Format]reportout.ReportWriter
	reader    reportout.ReportReader
	archive   reportout.ArchiveIndex
	ids       id.Generator
	prefix    string
	log       hclog.Logger
}

// NewInteractor builds the report use case. Clipboard, reader and archive
// are optional; the operations that need them fail when they are absent.
func NewInteractor(deps Dependencies) reportin.Usecase {
	ids := deps.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	return &Interactor{
		summary:   deps.Summary,
		clipboard: deps.Clipboard,
		writers:   deps.Writers,
		reader:    deps.Reader,
		archive:   deps.Archive,
		ids:       ids,
		prefix:    deps.Prefix,
		log:       logging.OrNull(deps.Logger).Named("report"),
	}
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.SummaryOutput{}, err
	}
	snapshot, err := i.summary.Build(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return i.toSummaryOutput(snapshot), nil
}

func (i *Interactor) Copy(ctx context.Context) (dto.SummaryOutput, error) {
	out, err := i.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	if i.clipboard == nil {
		return dto.SummaryOutput{}, fmt.Errorf("clipboard is not configured")
	}
	if err := i.clipboard.WriteText(out.Text); err != nil {
		return dto.SummaryOutput{}, fmt.Errorf("copy report: %w", err)
	}
	i.log.Info("report copied to clipboard", "bytes", len(out.Text))
	return out, nil
}

func (i *Interactor) Download(ctx context.Context, input dto.DownloadInput) (dto.DownloadOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.DownloadOutput{}, err
	}
	format, ok := domain.ParseFormat(input.Format)
	if !ok {
		return dto.DownloadOutput{}, fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, input.Format)
	}
	writer, ok := i.writers[format]
	if !ok {
		return dto.DownloadOutput{}, fmt.Errorf("%w: no writer for format %s", apperrors.ErrInvalidInput, format)
	}
	snapshot, err := i.summary.Build(ctx)
	if err != nil {
		return dto.DownloadOutput{}, err
	}
	export := domain.Export{
		ID:       i.ids.New(),
		Snapshot: snapshot,
		Text:     i.summary.Render(snapshot),
		FileName: i.summary.FileName(i.prefix, snapshot),
		At:       snapshot.EndTime,
	}
	path, err := writer.Write(ctx, export)
	if err != nil {
		return dto.DownloadOutput{}, fmt.Errorf("write %s report: %w", format, err)
	}
	if i.archive != nil {
		record := domain.ArchivedReport{
			ID:              export.ID,
			Format:          format,
			Path:            path,
			Subject:         snapshot.Subject,
			StartedAt:       snapshot.StartTime,
			EndedAt:         snapshot.EndTime,
			DurationSeconds: snapshot.ElapsedSeconds,
			CreatedAt:       snapshot.EndTime,
		}
		if err := i.archive.Record(ctx, record); err != nil {
			// The file stays on disk; only its index row is missing.
			i.log.Error("archive index update failed", "id", export.ID, "error", err)
		}
	}
	i.log.Info("report exported", "id", export.ID, "format", string(format), "path", path)
	return dto.DownloadOutput{ID: export.ID, Format: string(format), Path: path}, nil
}

func (i *Interactor) ListArchived(ctx context.Context) ([]dto.ArchivedReportOutput, error) {
	if i.archive == nil {
		return nil, fmt.Errorf("archive index is not configured")
	}
	reports, err := i.archive.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArchivedReportOutput, 0, len(reports))
	for _, r := range reports {
		out = append(out, toArchivedOutput(r))
	}
	return out, nil
}

func (i *Interactor) GetArchived(ctx context.Context, reportID string) (dto.ArchivedReportDetail, error) {
	if reportID == "" {
		return dto.ArchivedReportDetail{}, fmt.Errorf("%w: report id is required", apperrors.ErrInvalidInput)
	}
	if i.archive == nil {
		return dto.ArchivedReportDetail{}, fmt.Errorf("archive index is not configured")
	}
	report, err := i.archive.Get(ctx, reportID)
	if err != nil {
		return dto.ArchivedReportDetail{}, err
	}
	detail := dto.ArchivedReportDetail{Report: toArchivedOutput(report)}
	if i.reader == nil {
		return detail, nil
	}
	content, err := i.reader.Read(ctx, report.Path)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			i.log.Warn("archived report file missing", "id", reportID, "path", report.Path)
		}
		return dto.ArchivedReportDetail{}, err
	}
	detail.Content = content
	return detail, nil
}

func (i *Interactor) Close() error {
	if i.archive == nil {
		return nil
	}
	return i.archive.Close()
}

func (i *Interactor) toSummaryOutput(s domain.Snapshot) dto.SummaryOutput {
	return dto.SummaryOutput{
		Subject:       s.Subject,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		TotalDuration: s.TotalDuration,
		Notes:         len(s.Notes),
		Engagements:   len(s.Engagements),
		Text:          i.summary.Render(s),
	}
}

func toArchivedOutput(r domain.ArchivedReport) dto.ArchivedReportOutput {
	return dto.ArchivedReportOutput{
		ID:              r.ID,
		Format:          string(r.Format),
		Path:            r.Path,
		Subject:         r.Subject,
		StartedAt:       r.StartedAt,
		EndedAt:         r.EndedAt,
		DurationSeconds: r.DurationSeconds,
		Duration:        timefmt.Clock(r.DurationSeconds),
		CreatedAt:       r.CreatedAt,
	}
}
