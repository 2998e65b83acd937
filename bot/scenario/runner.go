package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
)

// Runner drives one scenario's fixed step table: it materializes steps as
// the cursor reaches them, records validated results, advances the cursor
// and dispatches the terminal action past the last step. Steps that answer
// themselves are chained in an explicit loop bounded by the table size, so
// one physical message can advance several steps without recursion.
type Runner struct {
	name     string
	steps    map[int]StepFunc
	terminal TerminalFunc
	store    Store
	log      *slog.Logger
}

func NewRunner(name string, steps map[int]StepFunc, terminal TerminalFunc, store Store, log *slog.Logger) *Runner {
	return &Runner{
		name:     name,
		steps:    steps,
		terminal: terminal,
		store:    store,
		log:      log.With(sl.Module("scenario." + name)),
	}
}

func (r *Runner) Name() string {
	return r.name
}

// Start creates a fresh scenario at step 1, persists it and renders the
// first prompt.
func (r *Runner) Start(ctx context.Context, user *entity.User) (entity.Response, error) {
	scn := entity.NewScenario(r.name)
	if err := r.store.Upsert(ctx, user, scn); err != nil {
		return entity.Response{}, fmt.Errorf("starting %s: %w", r.name, err)
	}
	return r.run(ctx, user, scn, nil)
}

// Resume dispatches the incoming message to the handler the cursor points
// at. Resuming with a nil message re-renders the current prompt without
// side effects.
func (r *Runner) Resume(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) (entity.Response, error) {
	return r.run(ctx, user, scn, message)
}

func (r *Runner) run(ctx context.Context, user *entity.User, scn *entity.Scenario, message *string) (entity.Response, error) {
	// One extra hop for the terminal dispatch.
	for hops := 0; hops <= len(r.steps)+1; hops++ {
		if scn.CurrentStep > len(r.steps) {
			return r.terminal(ctx, user, scn)
		}

		step, ok := r.steps[scn.CurrentStep]
		if !ok {
			return entity.Response{}, fmt.Errorf("scenario %s: no handler for step %d", r.name, scn.CurrentStep)
		}

		if scn.EnsureStep(scn.CurrentStep) {
			if err := r.store.Upsert(ctx, user, scn); err != nil {
				return entity.Response{}, fmt.Errorf("persisting step %d: %w", scn.CurrentStep, err)
			}
		}

		result := step(ctx, user, scn, message)
		if result.Err != nil {
			return entity.Response{}, fmt.Errorf("step %d: %w", scn.CurrentStep, result.Err)
		}
		if result.Result == nil {
			return result.Response, nil
		}

		scn.SetResult(scn.CurrentStep, *result.Result)
		scn.CurrentStep++
		if err := r.store.Upsert(ctx, user, scn); err != nil {
			return entity.Response{}, fmt.Errorf("persisting step %d: %w", scn.CurrentStep-1, err)
		}

		r.log.Debug("step completed",
			slog.Int64("chat_id", user.ChatID),
			slog.Int("step", scn.CurrentStep-1),
		)
		message = nil
	}

	return entity.Response{}, fmt.Errorf("scenario %s: step loop did not terminate", r.name)
}
