package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarCallback(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *CalendarData
	}{
		{
			name: "day pick",
			data: "cal:day:05.01.2026",
			want: &CalendarData{Action: CalendarDay, Date: "05.01.2026"},
		},
		{
			name: "move with skip row",
			data: "cal:move:2026:2:1",
			want: &CalendarData{Action: CalendarMove, Year: 2026, Month: time.February, WithSkip: true},
		},
		{
			name: "move without skip row",
			data: "cal:move:2025:12:0",
			want: &CalendarData{Action: CalendarMove, Year: 2025, Month: time.December},
		},
		{
			name: "ignore",
			data: "cal:ignore",
			want: &CalendarData{Action: CalendarIgnore},
		},
		{
			name: "skip",
			data: "cal:skip",
			want: &CalendarData{Action: CalendarSkip},
		},
		{
			name: "day with bad date",
			data: "cal:day:32.13.2026",
			want: nil,
		},
		{
			name: "move with bad month",
			data: "cal:move:2026:13:0",
			want: nil,
		},
		{
			name: "foreign prefix",
			data: "rp:next:0",
			want: nil,
		},
		{
			name: "unknown action",
			data: "cal:teleport:now",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCalendarCallback(tt.data))
		})
	}
}

func TestCalendar_DayGrid(t *testing.T) {
	markup := Calendar(2026, time.February, false)
	rows := markup.InlineKeyboard

	// Navigation, header and week day captions come first.
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Len(t, rows[0], 4)
	assert.Contains(t, rows[1][0].Text, "Февраль")
	assert.Len(t, rows[2], 7)

	days := 0
	var tokens []string
	for _, row := range rows[3:] {
		assert.Len(t, row, 7, "day rows are full weeks")
		for _, button := range row {
			if button.Text != " " {
				days++
				tokens = append(tokens, button.CallbackData)
			}
		}
	}
	assert.Equal(t, 28, days)
	assert.Contains(t, tokens, "cal:day:01.02.2026")
	assert.Contains(t, tokens, "cal:day:28.02.2026")
}

func TestCalendar_SkipRow(t *testing.T) {
	markup := Calendar(2026, time.March, true)
	rows := markup.InlineKeyboard

	last := rows[len(rows)-1]
	require.Len(t, last, 1)
	assert.Equal(t, CalendarPrefix+CalendarSkip, last[0].CallbackData)

	markup = Calendar(2026, time.March, false)
	last = markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.NotEqual(t, CalendarPrefix+CalendarSkip, last[0].CallbackData)
}

func TestCalendar_NavigationTargets(t *testing.T) {
	markup := Calendar(2026, time.January, false)
	nav := markup.InlineKeyboard[0]

	assert.Equal(t, "cal:move:2025:1:0", nav[0].CallbackData, "prev year")
	assert.Equal(t, "cal:move:2025:12:0", nav[1].CallbackData, "prev month wraps the year")
	assert.Equal(t, "cal:move:2026:2:0", nav[2].CallbackData, "next month")
	assert.Equal(t, "cal:move:2027:1:0", nav[3].CallbackData, "next year")
}
