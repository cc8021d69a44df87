package usecase

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"chronos/internal/modules/observation/domain"
	"chronos/internal/modules/observation/dto"
	obsin "chronos/internal/modules/observation/port/in"
	obsout "chronos/internal/modules/observation/port/out"
	"chronos/internal/modules/observation/service"
	"chronos/internal/platform/logging"
	"chronos/internal/platform/timefmt"
)

type Interactor struct {
	engine *service.Engine
	driver obsout.TickDriver
	log    hclog.Logger
}

// NewInteractor wires the engine to a tick driver. A nil driver leaves
// ticking to explicit Tick calls.
func NewInteractor(engine *service.Engine, driver obsout.TickDriver, logger hclog.Logger) obsin.Usecase {
	return &Interactor{engine: engine, driver: driver, log: logging.OrNull(logger).Named("observation")}
}

func (i *Interactor) StartSession(ctx context.Context) (dto.StartOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.StartOutput{}, err
	}
	if i.driver != nil {
		i.driver.Stop()
	}
	run, restarted := i.engine.StartSession()
	view := i.engine.View()
	if restarted {
		i.log.Warn("session restarted while active, previous data discarded", "run", run)
	}
	if i.driver != nil {
		i.driver.Start(run, i.tickRun)
	}
	i.log.Info("session started", "run", run, "subject", view.Subject)
	return dto.StartOutput{Run: run, StartedAt: view.StartTime, Subject: view.Subject, Restarted: restarted}, nil
}

func (i *Interactor) tickRun(run uint64) {
	if !i.engine.TickRun(run) {
		i.log.Trace("stale tick dropped", "run", run)
	}
}

func (i *Interactor) StopSession(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if i.driver != nil {
		i.driver.Stop()
	}
	stopped := i.engine.StopSession()
	if stopped {
		view := i.engine.View()
		i.log.Info("session stopped", "run", view.Run, "elapsed", timefmt.Clock(view.ElapsedSeconds))
	}
	return stopped, nil
}

func (i *Interactor) SetSubject(ctx context.Context, subject string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	i.engine.SetSubject(subject)
	return nil
}

func (i *Interactor) ToggleState(ctx context.Context, stateID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok := i.engine.ToggleState(stateID)
	if !ok {
		i.log.Debug("toggle ignored: unknown state", "state", stateID)
	}
	return ok, nil
}

func (i *Interactor) RegisterAction(ctx context.Context, input dto.RegisterActionInput) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok := i.engine.RegisterAction(input.ActionID, input.Timed)
	if !ok {
		i.log.Debug("action ignored: unknown action", "action", input.ActionID)
	}
	return ok, nil
}

func (i *Interactor) LogEngagement(ctx context.Context, level string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	parsed, ok := domain.ParseEngagementLevel(strings.TrimSpace(level))
	if !ok {
		i.log.Debug("engagement ignored: unknown level", "level", level)
		return false, nil
	}
	applied := i.engine.LogEngagement(parsed)
	if !applied {
		i.log.Debug("engagement ignored: no active session")
	}
	return applied, nil
}

func (i *Interactor) AddNote(ctx context.Context, text string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	applied := i.engine.AddNote(text)
	if !applied {
		i.log.Debug("note ignored: blank text or no active session")
	}
	return applied, nil
}

func (i *Interactor) Tick(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return i.engine.Tick(), nil
}

func (i *Interactor) View(ctx context.Context) (dto.ViewOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.ViewOutput{}, err
	}
	return toViewOutput(i.engine.View()), nil
}

func (i *Interactor) Close() error {
	if i.driver != nil {
		i.driver.Stop()
	}
	return nil
}

func toViewOutput(s domain.Session) dto.ViewOutput {
	out := dto.ViewOutput{
		Phase:            string(s.Phase),
		Active:           s.Active(),
		Started:          s.Started(),
		Run:              s.Run,
		Subject:          s.Subject,
		StartTime:        s.StartTime,
		ElapsedSeconds:   s.ElapsedSeconds,
		ElapsedFormatted: timefmt.Clock(s.ElapsedSeconds),
		States:           make([]dto.StateOutput, 0, len(s.States)),
		Actions:          make([]dto.ActionOutput, 0, len(s.Actions)),
		Log:              make([]dto.LogEntryOutput, 0, len(s.Log)),
		Engagements:      make([]dto.EngagementOutput, 0, len(s.Engagements)),
		Notes:            make([]dto.NoteOutput, 0, len(s.Notes)),
	}
	for _, st := range s.States {
		out.States = append(out.States, dto.StateOutput{ID: st.ID, Name: st.Name, IsActive: st.IsActive, ElapsedSeconds: st.ElapsedSeconds})
	}
	for _, a := range s.Actions {
		out.Actions = append(out.Actions, dto.ActionOutput{ID: a.ID, Name: a.Name, Count: a.Count, IsTiming: a.IsTiming, ElapsedSeconds: a.ElapsedSeconds})
	}
	for _, e := range s.Log {
		out.Log = append(out.Log, dto.LogEntryOutput{Timestamp: e.Timestamp, Message: e.Message, Type: string(e.Type)})
	}
	for _, e := range s.Engagements {
		out.Engagements = append(out.Engagements, dto.EngagementOutput{Timestamp: e.Timestamp, Level: string(e.Level), Label: e.Level.Label()})
	}
	for _, n := range s.Notes {
		out.Notes = append(out.Notes, dto.NoteOutput{Timestamp: n.Timestamp, Text: n.Text})
	}
	return out
}
