package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"timekeeper/internal/lib/sl"
)

const valueInputOption = "USER_ENTERED"

// Range addresses a cell range on a named sheet, e.g. {"Отчет", "A1:H"}.
type Range struct {
	Sheet string
	Cells string
}

func (r Range) String() string {
	return r.Sheet + "!" + r.Cells
}

// ValueUpdate is one write of a batch update.
type ValueUpdate struct {
	Range  Range
	Values [][]string
}

// Service wraps the Google Sheets API with the handful of operations the
// repositories need.
type Service struct {
	svc *sheetsapi.Service
	log *slog.Logger
}

// NewService authenticates with a service account key file and builds the
// Sheets client.
func NewService(ctx context.Context, credsFile string, log *slog.Logger) (*Service, error) {
	raw, err := os.ReadFile(credsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("building sheets service: %w", err)
	}

	return &Service{
		svc: svc,
		log: log.With(sl.Module("sheets")),
	}, nil
}

// GetRange reads a single range as rows of strings.
func (s *Service) GetRange(ctx context.Context, spreadsheetID string, rng Range) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, rng.String()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting range %s: %w", rng, err)
	}
	return toStringRows(resp.Values), nil
}

// GetRanges reads several ranges in one batch call. Empty rows are dropped
// the way the filtered report view produces them.
func (s *Service) GetRanges(ctx context.Context, spreadsheetID string, ranges []Range) ([][][]string, error) {
	names := make([]string, 0, len(ranges))
	for _, rng := range ranges {
		names = append(names, rng.String())
	}

	resp, err := s.svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(names...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting ranges: %w", err)
	}

	result := make([][][]string, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		rows := make([][]string, 0, len(vr.Values))
		for _, row := range toStringRows(vr.Values) {
			if len(row) == 0 {
				continue
			}
			rows = append(rows, row)
		}
		result = append(result, rows)
	}
	return result, nil
}

// UpdateOne overwrites a single range.
func (s *Service) UpdateOne(ctx context.Context, spreadsheetID string, update ValueUpdate) error {
	body := &sheetsapi.ValueRange{Values: toAnyRows(update.Values)}
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, update.Range.String(), body).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating range %s: %w", update.Range, err)
	}
	return nil
}

// UpdateMany overwrites several ranges atomically from the API's point of
// view (one batchUpdate request).
func (s *Service) UpdateMany(ctx context.Context, spreadsheetID string, updates []ValueUpdate) error {
	data := make([]*sheetsapi.ValueRange, 0, len(updates))
	for _, update := range updates {
		data = append(data, &sheetsapi.ValueRange{
			Range:  update.Range.String(),
			Values: toAnyRows(update.Values),
		})
	}

	body := &sheetsapi.BatchUpdateValuesRequest{
		Data:             data,
		ValueInputOption: valueInputOption,
	}
	_, err := s.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, body).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("updating ranges: %w", err)
	}
	return nil
}

// Append adds rows after the given range and returns the 1-based sheet row
// the first appended row landed on.
func (s *Service) Append(ctx context.Context, spreadsheetID string, rng Range, rows [][]string) (int, error) {
	body := &sheetsapi.ValueRange{Values: toAnyRows(rows)}
	resp, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, rng.String(), body).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("appending to %s: %w", rng, err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("appending to %s: no update info returned", rng)
	}
	return ParseRowFromRange(resp.Updates.UpdatedRange)
}

var rowIDPattern = regexp.MustCompile(`[A-Za-z]+`)

// ParseRowFromRange extracts the leading row number from an A1 range like
// "Отчет!A17:H17".
func ParseRowFromRange(rangeStr string) (int, error) {
	cells := rangeStr
	if i := strings.LastIndex(cells, "!"); i >= 0 {
		cells = cells[i+1:]
	}
	first := strings.SplitN(cells, ":", 2)[0]
	rowID, err := strconv.Atoi(rowIDPattern.ReplaceAllString(first, ""))
	if err != nil {
		return 0, fmt.Errorf("parsing row id from %q: %w", rangeStr, err)
	}
	return rowID, nil
}

func toStringRows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}

func toAnyRows(values [][]string) [][]any {
	rows := make([][]any, 0, len(values))
	for _, row := range values {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		rows = append(rows, cells)
	}
	return rows
}
