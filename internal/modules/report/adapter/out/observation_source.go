package out

import (
	"context"

	obsin "chronos/internal/modules/observation/port/in"
	"chronos/internal/modules/report/domain"
	reportout "chronos/internal/modules/report/port/out"
)

type ObservationSource struct {
	observation obsin.Usecase
}

func NewObservationSource(observation obsin.Usecase) reportout.SessionSource {
	return &ObservationSource{observation: observation}
}

func (s *ObservationSource) Current(ctx context.Context) (domain.Snapshot, error) {
	view, err := s.observation.View(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if !view.Started {
		return domain.Snapshot{}, nil
	}
	snapshot := domain.Snapshot{
		Subject:        view.Subject,
		StartTime:      view.StartTime,
		ElapsedSeconds: view.ElapsedSeconds,
		States:         make([]domain.StateLine, 0, len(view.States)),
		Actions:        make([]domain.ActionLine, 0, len(view.Actions)),
		Engagements:    make([]domain.EngagementLine, 0, len(view.Engagements)),
		Notes:          make([]domain.NoteLine, 0, len(view.Notes)),
		FullLog:        make([]domain.LogLine, 0, len(view.Log)),
	}
	for _, st := range view.States {
		snapshot.States = append(snapshot.States, domain.StateLine{Name: st.Name, ElapsedSeconds: st.ElapsedSeconds})
	}
	for _, a := range view.Actions {
		snapshot.Actions = append(snapshot.Actions, domain.ActionLine{Name: a.Name, Count: a.Count, ElapsedSeconds: a.ElapsedSeconds})
	}
	for _, e := range view.Engagements {
		snapshot.Engagements = append(snapshot.Engagements, domain.EngagementLine{Timestamp: e.Timestamp, Level: e.Level, Label: e.Label})
	}
	for _, n := range view.Notes {
		snapshot.Notes = append(snapshot.Notes, domain.NoteLine{Timestamp: n.Timestamp, Text: n.Text})
	}
	for _, l := range view.Log {
		snapshot.FullLog = append(snapshot.FullLog, domain.LogLine{Timestamp: l.Timestamp, Message: l.Message})
	}
	return snapshot, nil
}
