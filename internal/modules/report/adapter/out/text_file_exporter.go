package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"chronos/internal/modules/report/domain"
	reportout "chronos/internal/modules/report/port/out"
)

// utf8BOM lets spreadsheet and notepad tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type TextFileExporter struct {
	dir string
}

func NewTextFileExporter(dir string) reportout.ReportWriter {
	return &TextFileExporter{dir: dir}
}

// Write replaces an existing report of the same day.
func (e *TextFileExporter) Write(_ context.Context, export domain.Export) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.dir, export.FileName)
	content := append(append([]byte{}, utf8BOM...), export.Text...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write text report: %w", err)
	}
	return path, nil
}
