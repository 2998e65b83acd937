package repository

import (
	"context"
	"fmt"
	"log/slog"

	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/storage"
)

// WorkTimeReports serves the per-user filtered report view and its
// aggregate stats, refreshing both from the datastore on a cache miss.
type WorkTimeReports struct {
	cache  Cache
	google *Google
	log    *slog.Logger
}

func NewWorkTimeReports(cache Cache, google *Google, log *slog.Logger) *WorkTimeReports {
	return &WorkTimeReports{
		cache:  cache,
		google: google,
		log:    log.With(sl.Module("repository.work_time_reports")),
	}
}

// GetReports returns the cached filtered rows for the user, running the
// locked refresh sequence on a miss.
func (r *WorkTimeReports) GetReports(ctx context.Context, user *entity.User, reportDate, client string) ([]entity.WorkTimeReport, error) {
	key := storage.ReportKey(user.ChatID)
	data, err := r.cache.GetData(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}
	if len(data) == 0 {
		if err := r.google.UpdateWorkTimeReportData(ctx, user, reportDate, client); err != nil {
			return nil, err
		}
		data, err = r.cache.GetData(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("loading reports: %w", err)
		}
	}
	return storage.DecodeList[entity.WorkTimeReport](data, key)
}

// GetStats returns the cached aggregate stat for the user, refreshing on a
// miss. A refresh that still yields nothing degrades to a stat that only
// carries the report date.
func (r *WorkTimeReports) GetStats(ctx context.Context, user *entity.User, reportDate, client string) (*entity.WorkTimeReportStat, error) {
	key := storage.ReportStatKey(user.ChatID)
	data, err := r.cache.GetData(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading report stat: %w", err)
	}
	if len(data) == 0 {
		if err := r.google.UpdateWorkTimeReportData(ctx, user, reportDate, client); err != nil {
			return nil, err
		}
		data, err = r.cache.GetData(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("loading report stat: %w", err)
		}
	}
	if len(data) == 0 {
		return &entity.WorkTimeReportStat{ReportDate: reportDate}, nil
	}

	stat := &entity.WorkTimeReportStat{}
	if err := storage.Decode(data, stat); err != nil {
		return nil, fmt.Errorf("decoding report stat: %w", err)
	}
	return stat, nil
}

// Delete soft-deletes a committed report row.
func (r *WorkTimeReports) Delete(ctx context.Context, rowID int) error {
	return r.google.MarkReportRemoved(ctx, rowID)
}

// RemoveFromCache drops the user's cached report view so the next read
// refetches it.
func (r *WorkTimeReports) RemoveFromCache(ctx context.Context, user *entity.User) error {
	return r.cache.DelKeys(ctx,
		storage.ReportKey(user.ChatID),
		storage.ReportStatKey(user.ChatID),
	)
}

// DeleteScenarioAndReports clears the user's scenario together with the
// cached report view; used by logout, menu entry and scenario completion.
func (r *WorkTimeReports) DeleteScenarioAndReports(ctx context.Context, user *entity.User) error {
	return r.cache.DelKeys(ctx,
		storage.ScenarioKey(user.ChatID),
		storage.ReportKey(user.ChatID),
		storage.ReportStatKey(user.ChatID),
	)
}
