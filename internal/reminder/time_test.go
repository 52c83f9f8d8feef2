package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-06-01T09:30:15", time.Date(2025, 6, 1, 9, 30, 15, 0, time.Local)},
		{"2025-06-01T09:30", time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)},
		{"2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		got, err := ParseISO(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, got.Equal(tt.want), "parsing %q", tt.input)
	}
}

func TestParseISORejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "yesterday", "06/01/2025 09:30"} {
		_, err := ParseISO(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	parsed, err := ParseISO("2025-06-01T09:30:15")
	require.NoError(t, err)

	canonical := ToCanonical(parsed)
	assert.Equal(t, "2025-06-01 09:30:15", canonical)

	back, err := FromCanonical(canonical)
	require.NoError(t, err)
	assert.True(t, back.Equal(parsed), "round trip should preserve the instant")
}
