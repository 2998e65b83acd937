package testutil

import (
	"timekeeper/internal/config"
)

// TestConfig builds a config with the same values the defaults would give,
// minus the backoff so lock tests do not sleep.
func TestConfig() *config.Config {
	conf := &config.Config{}
	conf.Env = "local"

	gc := &conf.Google
	gc.SpreadsheetId = "test-spreadsheet"
	gc.UsersSheetName = "Сотрудники"
	gc.UsersSheetRange = "A2:E"
	gc.WorkTypesSheetName = "Виды работ"
	gc.WorkTypesSheetRange = "A2:A"
	gc.ClientsSheetName = "Клиенты"
	gc.ClientsSheetRange = "A2:B"
	gc.ReportSheetName = "Отчет"
	gc.ReportSheetRange = "A2:H"
	gc.ReportRemoveCol = "J"
	gc.HandbookExpireSec = 3600
	gc.ReportExpireSec = 600
	gc.StatsSheetName = "Статистика"
	gc.StatsRowsRange = "A4:I"
	gc.StatsDateCell = "B1"
	gc.StatsUserCell = "B2"
	gc.StatsClientCell = "B3"
	gc.StatsTimePlanCell = "D1"
	gc.StatsTimeFactCell = "D2"
	gc.StatsTimeNetCell = "D3"
	gc.LockAttempts = 3
	gc.LockBackoffSec = 0
	gc.LockExpireSec = 30

	return conf
}
