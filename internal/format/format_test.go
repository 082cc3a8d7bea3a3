package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Name
		wantErr bool
	}{
		{"wio", "wio", Wio, false},
		{"case insensitive", "WIO", Wio, false},
		{"with spaces", " emiratesnbd ", EmiratesNBD, false},
		{"rakbank", "rakbank", RAKBank, false},
		{"unknown", "monzo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ForName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name)
		})
	}
}

func TestDetect(t *testing.T) {
	pages := []string{"Account Statement\nWio Bank PJSC\n01/02/2024 ..."}
	f, err := Detect(pages)
	require.NoError(t, err)
	assert.Equal(t, Wio, f.Name)

	pages = []string{"Emirates NBD Bank\nStatement of account"}
	f, err = Detect(pages)
	require.NoError(t, err)
	assert.Equal(t, EmiratesNBD, f.Name)

	_, err = Detect([]string{"some unrelated text"})
	assert.Error(t, err)
}

func TestDatePatternAnchoring(t *testing.T) {
	wio, err := ForName("wio")
	require.NoError(t, err)

	// Anchored at position 0 only.
	assert.True(t, wio.DatePattern.MatchString("01/02/2024 rest of line"))
	assert.False(t, wio.DatePattern.MatchString("paid on 01/02/2024"))
}
