package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// Calendar callback tokens: "cal:<action>[:args]". Day buttons carry the
// picked date already formatted as dd.mm.yyyy, navigation buttons carry the
// target month, so the widget itself stays stateless.
const (
	CalendarPrefix = "cal:"

	CalendarDay    = "day"
	CalendarMove   = "move"
	CalendarIgnore = "ignore"
	CalendarSkip   = "skip"
)

const calendarDateLayout = "02.01.2006"

var monthNames = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

var weekDays = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// CalendarData is a parsed calendar callback token.
type CalendarData struct {
	Action   string
	Date     string // dd.mm.yyyy, day action only
	Year     int    // move action only
	Month    time.Month
	WithSkip bool
}

// IsCalendarCallback reports whether the token belongs to the calendar widget.
func IsCalendarCallback(data string) bool {
	return strings.HasPrefix(data, CalendarPrefix)
}

// ParseCalendarCallback parses a calendar token; nil means the token is
// malformed and should be ignored.
func ParseCalendarCallback(data string) *CalendarData {
	if !strings.HasPrefix(data, CalendarPrefix) {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(data, CalendarPrefix), ":")

	switch parts[0] {
	case CalendarIgnore:
		return &CalendarData{Action: CalendarIgnore}

	case CalendarSkip:
		return &CalendarData{Action: CalendarSkip}

	case CalendarDay:
		if len(parts) != 2 {
			return nil
		}
		if _, err := time.Parse(calendarDateLayout, parts[1]); err != nil {
			return nil
		}
		return &CalendarData{Action: CalendarDay, Date: parts[1]}

	case CalendarMove:
		if len(parts) != 4 {
			return nil
		}
		year, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil
		}
		month, err := strconv.Atoi(parts[2])
		if err != nil || month < 1 || month > 12 {
			return nil
		}
		return &CalendarData{
			Action:   CalendarMove,
			Year:     year,
			Month:    time.Month(month),
			WithSkip: parts[3] == "1",
		}
	}
	return nil
}

// Calendar builds a day-grid inline keyboard for one month: header with
// year navigation, week day captions, day buttons and an optional skip row.
func Calendar(year int, month time.Month, withSkip bool) tgbotapi.InlineKeyboardMarkup {
	ignore := CalendarPrefix + CalendarIgnore

	nav := []tgbotapi.InlineKeyboardButton{
		{Text: "<<", CallbackData: moveToken(year-1, month, withSkip)},
		{Text: "<", CallbackData: moveToken(addMonth(year, month, -1, withSkip))},
		{Text: ">", CallbackData: moveToken(addMonth(year, month, 1, withSkip))},
		{Text: ">>", CallbackData: moveToken(year+1, month, withSkip)},
	}

	header := []tgbotapi.InlineKeyboardButton{
		{Text: fmt.Sprintf("%s %d", monthNames[month], year), CallbackData: ignore},
	}

	captions := make([]tgbotapi.InlineKeyboardButton, len(weekDays))
	for i, day := range weekDays {
		captions[i] = tgbotapi.InlineKeyboardButton{Text: day, CallbackData: ignore}
	}

	rows := [][]tgbotapi.InlineKeyboardButton{nav, header, captions}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7 // Monday-first grid
	daysInMonth := first.AddDate(0, 1, -1).Day()

	week := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, tgbotapi.InlineKeyboardButton{Text: " ", CallbackData: ignore})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		week = append(week, tgbotapi.InlineKeyboardButton{
			Text:         strconv.Itoa(day),
			CallbackData: CalendarPrefix + CalendarDay + ":" + date.Format(calendarDateLayout),
		})
		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]tgbotapi.InlineKeyboardButton, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, tgbotapi.InlineKeyboardButton{Text: " ", CallbackData: ignore})
		}
		rows = append(rows, week)
	}

	if withSkip {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			{Text: "Пропустить", CallbackData: CalendarPrefix + CalendarSkip},
		})
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func moveToken(year int, month time.Month, withSkip bool) string {
	skip := "0"
	if withSkip {
		skip = "1"
	}
	return fmt.Sprintf("%s%s:%d:%d:%s", CalendarPrefix, CalendarMove, year, int(month), skip)
}

func addMonth(year int, month time.Month, delta int, withSkip bool) (int, time.Month, bool) {
	moved := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return moved.Year(), moved.Month(), withSkip
}
