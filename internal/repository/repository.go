package repository

import (
	"context"
	"log/slog"
	"time"

	"timekeeper/entity"
	"timekeeper/internal/config"
	"timekeeper/internal/sheets"
)

// Cache is the slice of the key-value store the repositories use.
type Cache interface {
	GetData(ctx context.Context, key string) (map[string]any, error)
	SetData(ctx context.Context, key string, data map[string]any, ttl time.Duration) error
	DelKeys(ctx context.Context, keys ...string) error
}

// Sheets is the slice of the spreadsheet service the repositories use.
type Sheets interface {
	GetRange(ctx context.Context, spreadsheetID string, rng sheets.Range) ([][]string, error)
	GetRanges(ctx context.Context, spreadsheetID string, ranges []sheets.Range) ([][][]string, error)
	UpdateOne(ctx context.Context, spreadsheetID string, update sheets.ValueUpdate) error
	UpdateMany(ctx context.Context, spreadsheetID string, updates []sheets.ValueUpdate) error
	Append(ctx context.Context, spreadsheetID string, rng sheets.Range, rows [][]string) (int, error)
}

// Repository bundles the entity repositories over one cache and one
// spreadsheet datastore.
type Repository struct {
	Google          *Google
	Users           *Users
	WorkTypes       *WorkTypes
	Clients         *Clients
	Scenarios       *Scenarios
	WorkTimeReports *WorkTimeReports
}

// UpdateHandbooks forwards to the spreadsheet gateway; the ops API uses it
// to force a refresh.
func (r *Repository) UpdateHandbooks(ctx context.Context) error {
	return r.Google.UpdateHandbooks(ctx)
}

// GetClients forwards to the clients handbook.
func (r *Repository) GetClients(ctx context.Context) ([]entity.Client, error) {
	return r.Clients.Get(ctx)
}

func New(conf *config.Config, cache Cache, api Sheets, log *slog.Logger) *Repository {
	google := NewGoogle(conf, cache, api, log)
	return &Repository{
		Google:          google,
		Users:           NewUsers(cache, google, log),
		WorkTypes:       NewWorkTypes(cache, google, log),
		Clients:         NewClients(cache, google, log),
		Scenarios:       NewScenarios(cache, log),
		WorkTimeReports: NewWorkTimeReports(cache, google, log),
	}
}
