package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"chronos/internal/modules/report/domain"
	reportout "chronos/internal/modules/report/port/out"
	"chronos/internal/platform/markdown"
	"chronos/internal/platform/slug"
	"chronos/internal/platform/timefmt"
)

type MarkdownNoteStore struct {
	reportsDir string
	renderer   domain.Renderer
}

func NewMarkdownNoteStore(reportsDir string, renderer domain.Renderer) reportout.ReportWriter {
	return &MarkdownNoteStore{reportsDir: reportsDir, renderer: renderer}
}

func (s *MarkdownNoteStore) Write(_ context.Context, export domain.Export) (string, error) {
	date := timefmt.In(export.At, s.renderer.Location)
	dir := filepath.Join(s.reportsDir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(export.Snapshot.Subject))
	path := filepath.Join(dir, name)

	meta, body := s.renderer.Markdown(export.ID, export.Snapshot)
	rendered, err := markdown.Note{Meta: meta, Body: body}.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report note: %w", err)
	}
	return path, nil
}
