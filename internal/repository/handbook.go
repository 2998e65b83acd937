package repository

import (
	"context"
	"fmt"
	"log/slog"

	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/storage"
)

// WorkTypes serves the work types handbook with refresh-on-miss.
type WorkTypes struct {
	cache  Cache
	google *Google
	log    *slog.Logger
}

func NewWorkTypes(cache Cache, google *Google, log *slog.Logger) *WorkTypes {
	return &WorkTypes{
		cache:  cache,
		google: google,
		log:    log.With(sl.Module("repository.work_types")),
	}
}

func (r *WorkTypes) Get(ctx context.Context) ([]entity.WorkType, error) {
	data, err := r.cache.GetData(ctx, storage.WorkTypesKey())
	if err != nil {
		return nil, fmt.Errorf("loading work types: %w", err)
	}
	if len(data) == 0 {
		if err := r.google.UpdateHandbooks(ctx); err != nil {
			r.log.Warn("refreshing handbooks", sl.Err(err))
			return nil, nil
		}
		data, err = r.cache.GetData(ctx, storage.WorkTypesKey())
		if err != nil {
			return nil, fmt.Errorf("loading work types: %w", err)
		}
	}
	return storage.DecodeList[entity.WorkType](data, storage.WorkTypesKey())
}

// Clients serves the clients handbook with refresh-on-miss.
type Clients struct {
	cache  Cache
	google *Google
	log    *slog.Logger
}

func NewClients(cache Cache, google *Google, log *slog.Logger) *Clients {
	return &Clients{
		cache:  cache,
		google: google,
		log:    log.With(sl.Module("repository.clients")),
	}
}

func (r *Clients) Get(ctx context.Context) ([]entity.Client, error) {
	data, err := r.cache.GetData(ctx, storage.ClientsKey())
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	if len(data) == 0 {
		if err := r.google.UpdateHandbooks(ctx); err != nil {
			r.log.Warn("refreshing handbooks", sl.Err(err))
			return nil, nil
		}
		data, err = r.cache.GetData(ctx, storage.ClientsKey())
		if err != nil {
			return nil, fmt.Errorf("loading clients: %w", err)
		}
	}
	return storage.DecodeList[entity.Client](data, storage.ClientsKey())
}

// GetActive returns the clients still open for reporting.
func (r *Clients) GetActive(ctx context.Context) ([]entity.Client, error) {
	clients, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]entity.Client, 0, len(clients))
	for _, client := range clients {
		if !client.Completed {
			active = append(active, client)
		}
	}
	return active, nil
}
