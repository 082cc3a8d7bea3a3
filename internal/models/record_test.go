package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateMarshalCSV(t *testing.T) {
	d := NewDate(2024, time.February, 1)
	s, err := d.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "01/02/2024", s)

	var zero Date
	s, err = zero.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestDateUnmarshalCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantDay int
		wantErr bool
	}{
		{"slash layout", "01/02/2024", 1, false},
		{"month name layout", "15 Jan 2024", 15, false},
		{"iso layout", "2024-02-01", 1, false},
		{"empty is zero value", "", 0, false},
		{"garbage", "not-a-date", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.UnmarshalCSV(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.input == "" {
				assert.True(t, d.IsZero())
				return
			}
			assert.Equal(t, tt.wantDay, d.Day())
		})
	}
}

func TestDateBefore(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 2)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}
