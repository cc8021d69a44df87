package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	reportout "chronos/internal/modules/report/port/out"
	apperrors "chronos/internal/platform/errors"
	"chronos/internal/platform/markdown"
)

type FileReportReader struct{}

func NewFileReportReader() reportout.ReportReader {
	return FileReportReader{}
}

// Read returns the report body. Markdown notes lose their frontmatter and
// text exports lose their byte order mark.
func (FileReportReader) Read(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: report file %s", apperrors.ErrNotFound, path)
		}
		return "", fmt.Errorf("read report: %w", err)
	}
	note, err := markdown.Parse(string(raw))
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(note.Body, "\n"), nil
}
