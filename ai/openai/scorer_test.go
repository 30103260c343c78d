package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		want    int
		wantErr bool
	}{
		{"bare integer", "7", 7, false},
		{"integer with whitespace", "  9\n", 9, false},
		{"integer in sentence", "I would rate this 8 out of 10.", 8, false},
		{"zero", "0", 0, false},
		{"clamped above scale", "15", 10, false},
		{"no digits", "highly relevant", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRating(tt.answer)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
