package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *CallbackData
	}{
		{
			name: "next with page",
			data: "rp:next:2",
			want: &CallbackData{Action: ActionNext, Page: 2},
		},
		{
			name: "prev at first page",
			data: "rp:prev:0",
			want: &CallbackData{Action: ActionPrev, Page: 0},
		},
		{
			name: "remove with row id",
			data: "rp:remove:1:42",
			want: &CallbackData{Action: ActionRemove, Page: 1, RowID: 42},
		},
		{
			name: "out",
			data: "rp:out:3",
			want: &CallbackData{Action: ActionOut, Page: 3},
		},
		{
			name: "foreign prefix",
			data: "wf:next:2",
			want: nil,
		},
		{
			name: "unknown action",
			data: "rp:jump:2",
			want: nil,
		},
		{
			name: "missing page",
			data: "rp:next",
			want: nil,
		},
		{
			name: "page is not a number",
			data: "rp:next:abc",
			want: nil,
		},
		{
			name: "negative page",
			data: "rp:next:-1",
			want: nil,
		},
		{
			name: "row id is not a number",
			data: "rp:remove:1:xyz",
			want: nil,
		},
		{
			name: "plain text",
			data: "hello",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCallback(tt.data))
		})
	}
}

func TestBuildCallbackRoundTrip(t *testing.T) {
	cb := ParseCallback(BuildCallback(ActionNext, 5))
	if assert.NotNil(t, cb) {
		assert.Equal(t, ActionNext, cb.Action)
		assert.Equal(t, 5, cb.Page)
	}

	cb = ParseCallback(BuildRowCallback(ActionRemove, 2, 17))
	if assert.NotNil(t, cb) {
		assert.Equal(t, ActionRemove, cb.Action)
		assert.Equal(t, 2, cb.Page)
		assert.Equal(t, 17, cb.RowID)
	}
}

func TestIsCallback(t *testing.T) {
	assert.True(t, IsCallback("rp:next:0"))
	assert.False(t, IsCallback("cal:day:01.01.2026"))
	assert.False(t, IsCallback("Отчет по клиентам"))
}
