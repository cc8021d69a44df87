package in

import (
	"context"

	"chronos/internal/modules/observation/dto"
	obsin "chronos/internal/modules/observation/port/in"
)

type CLIHandler struct {
	usecase obsin.Usecase
}

func NewCLIHandler(usecase obsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (dto.StartOutput, error) {
	return h.usecase.StartSession(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (bool, error) {
	return h.usecase.StopSession(ctx)
}

func (h CLIHandler) SetSubject(ctx context.Context, subject string) error {
	return h.usecase.SetSubject(ctx, subject)
}

func (h CLIHandler) ToggleState(ctx context.Context, stateID string) (bool, error) {
	return h.usecase.ToggleState(ctx, stateID)
}

func (h CLIHandler) RegisterAction(ctx context.Context, actionID string, timed bool) (bool, error) {
	return h.usecase.RegisterAction(ctx, dto.RegisterActionInput{ActionID: actionID, Timed: timed})
}

func (h CLIHandler) LogEngagement(ctx context.Context, level string) (bool, error) {
	return h.usecase.LogEngagement(ctx, level)
}

func (h CLIHandler) AddNote(ctx context.Context, text string) (bool, error) {
	return h.usecase.AddNote(ctx, text)
}

func (h CLIHandler) Tick(ctx context.Context) (bool, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) View(ctx context.Context) (dto.ViewOutput, error) {
	return h.usecase.View(ctx)
}

func (h CLIHandler) Close() error {
	return h.usecase.Close()
}
