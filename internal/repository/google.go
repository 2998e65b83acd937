package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"timekeeper/entity"
	"timekeeper/internal/config"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/sheets"
	"timekeeper/internal/storage"
)

// Spreadsheet boolean literals as the handbook sheets spell them.
const (
	SpreadsheetYes = "Да"
	SpreadsheetNo  = "Нет"
)

var (
	// ErrLockTimeout means the advisory lock over the shared report filter
	// could not be acquired within the configured attempts.
	ErrLockTimeout = errors.New("report lock timeout")
	// ErrFilterNotSet means writing the report filter cells failed, so the
	// rows behind them cannot be trusted.
	ErrFilterNotSet = errors.New("report filter not set")
)

// Google reads and writes the spreadsheet datastore and maintains the cached
// projections of it: the handbooks and the per-user filtered report view.
type Google struct {
	cache    Cache
	api      Sheets
	conf     *config.Config
	validate *validator.Validate
	log      *slog.Logger
}

func NewGoogle(conf *config.Config, cache Cache, api Sheets, log *slog.Logger) *Google {
	return &Google{
		cache:    cache,
		api:      api,
		conf:     conf,
		validate: validator.New(),
		log:      log.With(sl.Module("repository.google")),
	}
}

// UpdateHandbooks refetches the users, work types and clients sheets in one
// batch read and repopulates their cache entries with the handbook TTL.
func (g *Google) UpdateHandbooks(ctx context.Context) error {
	gc := g.conf.Google
	ranges := []sheets.Range{
		{Sheet: gc.UsersSheetName, Cells: gc.UsersSheetRange},
		{Sheet: gc.WorkTypesSheetName, Cells: gc.WorkTypesSheetRange},
		{Sheet: gc.ClientsSheetName, Cells: gc.ClientsSheetRange},
	}

	read, err := g.api.GetRanges(ctx, gc.SpreadsheetId, ranges)
	if err != nil {
		return fmt.Errorf("fetching handbooks: %w", err)
	}
	if len(read) != len(ranges) {
		return fmt.Errorf("fetching handbooks: got %d ranges, want %d", len(read), len(ranges))
	}

	ttl := time.Duration(gc.HandbookExpireSec) * time.Second

	users := make([]entity.User, 0, len(read[0]))
	for _, row := range read[0] {
		if user := g.parseUserRow(row); user != nil {
			users = append(users, *user)
		}
	}
	data, err := storage.EncodeList(storage.UsersListKey(), users)
	if err != nil {
		return fmt.Errorf("encoding users: %w", err)
	}
	if err := g.cache.SetData(ctx, storage.UsersListKey(), data, ttl); err != nil {
		return fmt.Errorf("caching users: %w", err)
	}

	workTypes := make([]entity.WorkType, 0, len(read[1]))
	for _, row := range read[1] {
		if workType := g.parseWorkTypeRow(row); workType != nil {
			workTypes = append(workTypes, *workType)
		}
	}
	data, err = storage.EncodeList(storage.WorkTypesKey(), workTypes)
	if err != nil {
		return fmt.Errorf("encoding work types: %w", err)
	}
	if err := g.cache.SetData(ctx, storage.WorkTypesKey(), data, ttl); err != nil {
		return fmt.Errorf("caching work types: %w", err)
	}

	clients := make([]entity.Client, 0, len(read[2]))
	for _, row := range read[2] {
		if client := g.parseClientRow(row); client != nil {
			clients = append(clients, *client)
		}
	}
	data, err = storage.EncodeList(storage.ClientsKey(), clients)
	if err != nil {
		return fmt.Errorf("encoding clients: %w", err)
	}
	if err := g.cache.SetData(ctx, storage.ClientsKey(), data, ttl); err != nil {
		return fmt.Errorf("caching clients: %w", err)
	}

	g.log.Info("handbooks updated",
		slog.Int("users", len(users)),
		slog.Int("work_types", len(workTypes)),
		slog.Int("clients", len(clients)),
	)
	return nil
}

// UpdateWorkTimeReportData runs the filter-then-read sequence behind the
// per-user report view: write the shared filter cells, batch-read the
// filtered rows and the aggregate cells, cache both for the session. The
// filter cells are shared state, so the whole sequence holds the advisory
// lock.
func (g *Google) UpdateWorkTimeReportData(ctx context.Context, user *entity.User, reportDate, client string) error {
	if err := g.acquireLock(ctx); err != nil {
		return err
	}
	defer g.releaseLock(ctx)

	gc := g.conf.Google
	updates := []sheets.ValueUpdate{
		{
			Range:  sheets.Range{Sheet: gc.StatsSheetName, Cells: cellRange(gc.StatsDateCell)},
			Values: [][]string{{reportDate}},
		},
		{
			Range:  sheets.Range{Sheet: gc.StatsSheetName, Cells: cellRange(gc.StatsUserCell)},
			Values: [][]string{{user.ID}},
		},
	}
	if client != "" {
		updates = append(updates, sheets.ValueUpdate{
			Range:  sheets.Range{Sheet: gc.StatsSheetName, Cells: cellRange(gc.StatsClientCell)},
			Values: [][]string{{client}},
		})
	}

	if err := g.api.UpdateMany(ctx, gc.SpreadsheetId, updates); err != nil {
		g.log.Warn("setting report filter", sl.Err(err))
		return fmt.Errorf("%w: %w", ErrFilterNotSet, err)
	}

	ranges := []sheets.Range{
		{Sheet: gc.StatsSheetName, Cells: gc.StatsRowsRange},
		{Sheet: gc.StatsSheetName, Cells: cellRange(gc.StatsTimePlanCell)},
		{Sheet: gc.StatsSheetName, Cells: cellRange(gc.StatsTimeFactCell)},
		{Sheet: gc.StatsSheetName, Cells: cellRange(gc.StatsTimeNetCell)},
	}

	read, err := g.api.GetRanges(ctx, gc.SpreadsheetId, ranges)
	if err != nil {
		return fmt.Errorf("fetching report data: %w", err)
	}
	if len(read) != len(ranges) {
		return fmt.Errorf("fetching report data: got %d ranges, want %d", len(read), len(ranges))
	}

	reports := make([]entity.WorkTimeReport, 0, len(read[0]))
	for _, row := range read[0] {
		if report := g.parseReportRow(row); report != nil {
			reports = append(reports, *report)
		}
	}

	ttl := time.Duration(gc.ReportExpireSec) * time.Second

	data, err := storage.EncodeList(storage.ReportKey(user.ChatID), reports)
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	if err := g.cache.SetData(ctx, storage.ReportKey(user.ChatID), data, ttl); err != nil {
		return fmt.Errorf("caching reports: %w", err)
	}

	stat := entity.WorkTimeReportStat{
		ReportDate: reportDate,
		TimePlan:   singleCell(read[1]),
		TimeFact:   singleCell(read[2]),
		TimeNet:    singleCell(read[3]),
	}
	statData, err := storage.Encode(stat)
	if err != nil {
		return fmt.Errorf("encoding report stat: %w", err)
	}
	if err := g.cache.SetData(ctx, storage.ReportStatKey(user.ChatID), statData, ttl); err != nil {
		return fmt.Errorf("caching report stat: %w", err)
	}

	return nil
}

// AppendWorkTimeReport validates and commits a finished report. Returns the
// provider-assigned row id.
func (g *Google) AppendWorkTimeReport(ctx context.Context, report *entity.WorkTimeReport) (int, error) {
	if err := g.validate.Struct(report); err != nil {
		return 0, fmt.Errorf("validating report: %w", err)
	}

	gc := g.conf.Google
	rng := sheets.Range{Sheet: gc.ReportSheetName, Cells: gc.ReportSheetRange}
	rowID, err := g.api.Append(ctx, gc.SpreadsheetId, rng, [][]string{report.Row()})
	if err != nil {
		return 0, fmt.Errorf("appending report: %w", err)
	}
	return rowID, nil
}

// MarkReportRemoved soft-deletes a committed row by writing the removal
// flag into its remove column.
func (g *Google) MarkReportRemoved(ctx context.Context, rowID int) error {
	gc := g.conf.Google
	cell := fmt.Sprintf("%s%d", gc.ReportRemoveCol, rowID)
	update := sheets.ValueUpdate{
		Range:  sheets.Range{Sheet: gc.ReportSheetName, Cells: cellRange(cell)},
		Values: [][]string{{SpreadsheetYes}},
	}
	if err := g.api.UpdateOne(ctx, gc.SpreadsheetId, update); err != nil {
		return fmt.Errorf("marking report %d removed: %w", rowID, err)
	}
	return nil
}

// acquireLock takes the advisory lock guarding the shared filter cells,
// retrying a fixed number of times with a fixed backoff.
func (g *Google) acquireLock(ctx context.Context) error {
	gc := g.conf.Google
	lockKey := storage.ReportLockKey()
	backoff := time.Duration(gc.LockBackoffSec) * time.Second

	for attempt := 1; ; attempt++ {
		held, err := g.cache.GetData(ctx, lockKey)
		if err != nil {
			return fmt.Errorf("checking lock: %w", err)
		}
		if len(held) == 0 {
			break
		}
		if attempt >= gc.LockAttempts {
			g.log.Warn("report lock timeout",
				slog.String("lock_key", lockKey),
				slog.Int("attempts", attempt),
			)
			return ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	token := map[string]any{"owner": uuid.NewString()}
	ttl := time.Duration(gc.LockExpireSec) * time.Second
	if err := g.cache.SetData(ctx, lockKey, token, ttl); err != nil {
		return fmt.Errorf("taking lock: %w", err)
	}
	return nil
}

func (g *Google) releaseLock(ctx context.Context) {
	if err := g.cache.DelKeys(ctx, storage.ReportLockKey()); err != nil {
		g.log.Warn("releasing report lock", sl.Err(err))
	}
}

func (g *Google) parseUserRow(row []string) *entity.User {
	if len(row) < 5 {
		g.log.Warn("user row is too short", slog.Any("row", row))
		return nil
	}
	return &entity.User{
		Fullname: row[0],
		JobTitle: row[1],
		ID:       row[2],
		Admin:    row[3] == SpreadsheetYes,
		Active:   row[4] == SpreadsheetYes,
	}
}

func (g *Google) parseWorkTypeRow(row []string) *entity.WorkType {
	if len(row) < 1 || row[0] == "" {
		g.log.Warn("work type row is empty", slog.Any("row", row))
		return nil
	}
	return &entity.WorkType{Name: row[0]}
}

func (g *Google) parseClientRow(row []string) *entity.Client {
	if len(row) < 2 || row[0] == "" {
		g.log.Warn("client row is too short", slog.Any("row", row))
		return nil
	}
	if row[1] != SpreadsheetYes && row[1] != SpreadsheetNo {
		g.log.Warn("client completed flag is not valid", slog.Any("row", row))
		return nil
	}
	return &entity.Client{
		Name:      row[0],
		Completed: row[1] == SpreadsheetYes,
	}
}

func (g *Google) parseReportRow(row []string) *entity.WorkTimeReport {
	if len(row) < 9 {
		g.log.Warn("report row is too short", slog.Any("row", row))
		return nil
	}
	rowID, err := parseRowID(row[8])
	if err != nil {
		g.log.Warn("report row id is not valid", slog.Any("row", row))
		return nil
	}
	return &entity.WorkTimeReport{
		ReportDate:   row[0],
		UserID:       row[1],
		UserFullname: row[2],
		UserJobTitle: row[3],
		WorkType:     row[4],
		Client:       row[5],
		Hours:        row[6],
		Comment:      row[7],
		RowID:        rowID,
	}
}

func parseRowID(cell string) (int, error) {
	var rowID int
	_, err := fmt.Sscanf(cell, "%d", &rowID)
	return rowID, err
}

func cellRange(cell string) string {
	return cell + ":" + cell
}

func singleCell(rows [][]string) string {
	if len(rows) == 1 && len(rows[0]) == 1 {
		return rows[0][0]
	}
	return ""
}
