package service

import (
	"context"
	"fmt"

	"chronos/internal/modules/report/domain"
	reportout "chronos/internal/modules/report/port/out"
	"chronos/internal/platform/clock"
	apperrors "chronos/internal/platform/errors"
	"chronos/internal/platform/timefmt"
)

// SummaryService freezes the live session into a report snapshot without
// mutating it.
type SummaryService struct {
	clock    clock.Clock
	source   reportout.SessionSource
	renderer domain.Renderer
}

func NewSummaryService(clock clock.Clock, source reportout.SessionSource, renderer domain.Renderer) *SummaryService {
	return &SummaryService{clock: clock, source: source, renderer: renderer}
}

// Build returns apperrors.ErrNoData while no session has ever started.
func (s *SummaryService) Build(ctx context.Context) (domain.Snapshot, error) {
	snapshot, err := s.source.Current(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read session: %w", err)
	}
	if !snapshot.HasData() {
		return domain.Snapshot{}, apperrors.ErrNoData
	}
	snapshot.EndTime = s.clock.Now()
	snapshot.TotalDuration = timefmt.Clock(snapshot.ElapsedSeconds)
	return snapshot, nil
}

func (s *SummaryService) Render(snapshot domain.Snapshot) string {
	return s.renderer.Render(snapshot)
}

func (s *SummaryService) FileName(prefix string, snapshot domain.Snapshot) string {
	return s.renderer.FileName(prefix, snapshot.EndTime)
}
