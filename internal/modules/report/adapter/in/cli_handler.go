package in

import (
	"context"

	"chronos/internal/modules/report/dto"
	reportin "chronos/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Copy(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Copy(ctx)
}

func (h CLIHandler) Download(ctx context.Context, format string) (dto.DownloadOutput, error) {
	return h.usecase.Download(ctx, dto.DownloadInput{Format: format})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ArchivedReportOutput, error) {
	return h.usecase.ListArchived(ctx)
}

func (h CLIHandler) Show(ctx context.Context, reportID string) (dto.ArchivedReportDetail, error) {
	return h.usecase.GetArchived(ctx, reportID)
}

func (h CLIHandler) Close() error {
	return h.usecase.Close()
}
