package in

import (
	"context"

	"chronos/internal/modules/report/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Copy(ctx context.Context) (dto.SummaryOutput, error)
	Download(ctx context.Context, input dto.DownloadInput) (dto.DownloadOutput, error)
	ListArchived(ctx context.Context) ([]dto.ArchivedReportOutput, error)
	GetArchived(ctx context.Context, id string) (dto.ArchivedReportDetail, error)
	Close() error
}
