package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"timekeeper/internal/sheets"
)

// MockSheets is a mock for the spreadsheet service.
type MockSheets struct {
	mock.Mock
}

func (m *MockSheets) GetRange(ctx context.Context, spreadsheetID string, rng sheets.Range) ([][]string, error) {
	args := m.Called(ctx, spreadsheetID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

func (m *MockSheets) GetRanges(ctx context.Context, spreadsheetID string, ranges []sheets.Range) ([][][]string, error) {
	args := m.Called(ctx, spreadsheetID, ranges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][][]string), args.Error(1)
}

func (m *MockSheets) UpdateOne(ctx context.Context, spreadsheetID string, update sheets.ValueUpdate) error {
	args := m.Called(ctx, spreadsheetID, update)
	return args.Error(0)
}

func (m *MockSheets) UpdateMany(ctx context.Context, spreadsheetID string, updates []sheets.ValueUpdate) error {
	args := m.Called(ctx, spreadsheetID, updates)
	return args.Error(0)
}

func (m *MockSheets) Append(ctx context.Context, spreadsheetID string, rng sheets.Range, rows [][]string) (int, error) {
	args := m.Called(ctx, spreadsheetID, rng, rows)
	return args.Int(0), args.Error(1)
}
