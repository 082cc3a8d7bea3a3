package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithLayout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		layout  string
		wantY   int
		wantM   time.Month
		wantD   int
		wantErr bool
	}{
		{"slash layout", "01/02/2024", LayoutSlash, 2024, time.February, 1, false},
		{"single digit day", "1/02/2024", LayoutSlash, 2024, time.February, 1, false},
		{"month name layout", "15 Jan 2024", LayoutMonthName, 2024, time.January, 15, false},
		{"single digit with month name", "4 Dec 2023", LayoutMonthName, 2023, time.December, 4, false},
		{"wrong layout", "2024-02-01", LayoutSlash, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWithLayout(tt.input, tt.layout)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantY, got.Year())
			assert.Equal(t, tt.wantM, got.Month())
			assert.Equal(t, tt.wantD, got.Day())
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())

	_, err = Parse("not a date")
	assert.Error(t, err)
}
