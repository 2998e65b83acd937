package storage

import (
	"strconv"
	"strings"
)

// Cache key namespaces. Keys are built with the helpers below instead of
// ad-hoc string concatenation so every entity has exactly one key shape.
const (
	nsScenario       = "scenario"
	nsUser           = "user"
	nsUsersList      = "users_list"
	nsWorkTypes      = "work_types"
	nsClients        = "clients"
	nsReport         = "work_time_report"
	nsReportStat     = "work_time_report_stat"
	nsReportLockName = "work_time_report_lock"
)

func key(parts ...string) string {
	return strings.Join(parts, ":")
}

func ScenarioKey(chatID int64) string {
	return key(nsScenario, strconv.FormatInt(chatID, 10))
}

func UserKey(chatID int64) string {
	return key(nsUser, strconv.FormatInt(chatID, 10))
}

func UsersListKey() string {
	return nsUsersList
}

func WorkTypesKey() string {
	return nsWorkTypes
}

func ClientsKey() string {
	return nsClients
}

func ReportKey(chatID int64) string {
	return key(nsReport, strconv.FormatInt(chatID, 10))
}

func ReportStatKey(chatID int64) string {
	return key(nsReportStat, strconv.FormatInt(chatID, 10))
}

// ReportLockKey is session-independent: the filter cells it guards are
// shared by all users.
func ReportLockKey() string {
	return nsReportLockName
}
