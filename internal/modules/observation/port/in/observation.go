package in

import (
	"context"

	"chronos/internal/modules/observation/dto"
)

// Usecase is the command surface of the observation engine. Commands return
// false when they were ignored (unknown id, blank note, inactive session).
type Usecase interface {
	StartSession(ctx context.Context) (dto.StartOutput, error)
	StopSession(ctx context.Context) (bool, error)
	SetSubject(ctx context.Context, subject string) error
	ToggleState(ctx context.Context, stateID string) (bool, error)
	RegisterAction(ctx context.Context, input dto.RegisterActionInput) (bool, error)
	LogEngagement(ctx context.Context, level string) (bool, error)
	AddNote(ctx context.Context, text string) (bool, error)
	Tick(ctx context.Context) (bool, error)
	View(ctx context.Context) (dto.ViewOutput, error)
	// Close stops the tick driver. The session data stays readable.
	Close() error
}
