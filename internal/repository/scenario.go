package repository

import (
	"context"
	"fmt"
	"log/slog"

	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/storage"
)

// Scenarios persists per-user scenario state in the cache. One scenario per
// chat session, no TTL: state survives restarts until the scenario ends.
type Scenarios struct {
	cache Cache
	log   *slog.Logger
}

func NewScenarios(cache Cache, log *slog.Logger) *Scenarios {
	return &Scenarios{
		cache: cache,
		log:   log.With(sl.Module("repository.scenarios")),
	}
}

func (r *Scenarios) Get(ctx context.Context, user *entity.User) (*entity.Scenario, error) {
	data, err := r.cache.GetData(ctx, storage.ScenarioKey(user.ChatID))
	if err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	scenario := &entity.Scenario{}
	if err := storage.Decode(data, scenario); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return scenario, nil
}

func (r *Scenarios) Upsert(ctx context.Context, user *entity.User, scenario *entity.Scenario) error {
	data, err := storage.Encode(scenario)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := r.cache.SetData(ctx, storage.ScenarioKey(user.ChatID), data, 0); err != nil {
		return fmt.Errorf("storing scenario: %w", err)
	}
	return nil
}

func (r *Scenarios) Delete(ctx context.Context, user *entity.User) error {
	return r.cache.DelKeys(ctx, storage.ScenarioKey(user.ChatID))
}
