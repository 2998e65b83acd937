package scenario

import (
	"context"

	"timekeeper/entity"
)

// Skip is the canonical "skipped" answer for optional steps. Handlers
// normalize empty input to it.
const Skip = "-"

// StepResult is the outcome of one step handler invocation. Result != nil
// means the incoming message validated; its canonical form is recorded for
// the step and the cursor advances. Result == nil leaves the scenario where
// it is and Response re-prompts the user.
type StepResult struct {
	Response entity.Response
	Result   *string
	Err      error
}

// StepFunc handles one scenario step. A nil message means the user just
// arrived at the step and only the prompt must be rendered.
type StepFunc func(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) StepResult

// TerminalFunc runs once the cursor moves past the last declared step. It
// performs the committing side effect and decides whether the scenario is
// torn down.
type TerminalFunc func(ctx context.Context, user *entity.User, scn *entity.Scenario) (entity.Response, error)

// Store persists scenario state between messages.
type Store interface {
	Get(ctx context.Context, user *entity.User) (*entity.Scenario, error)
	Upsert(ctx context.Context, user *entity.User, scn *entity.Scenario) error
	Delete(ctx context.Context, user *entity.User) error
}

// Notifier pushes an out-of-band chat message to a user. Best effort: a
// user without a session is silently skipped.
type Notifier interface {
	Notify(ctx context.Context, message string, user *entity.User) error
}

// Scenario is one registered conversation flow.
type Scenario interface {
	Name() string
	Start(ctx context.Context, user *entity.User) (entity.Response, error)
	Resume(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) (entity.Response, error)
}
