package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_String(t *testing.T) {
	rng := Range{Sheet: "Отчет", Cells: "A2:H"}
	assert.Equal(t, "Отчет!A2:H", rng.String())
}

func TestParseRowFromRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "append response range",
			input: "Отчет!A42:H42",
			want:  42,
		},
		{
			name:  "single cell",
			input: "Лист1!B7",
			want:  7,
		},
		{
			name:  "no sheet prefix",
			input: "A105:H105",
			want:  105,
		},
		{
			name:    "no row number",
			input:   "Отчет!A:H",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRowFromRange(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
