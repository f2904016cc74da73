package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"10:00", 600},
		{"23:59", 1439},
		{"24:00", 1440},
		{" 12:15 ", 735},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseClockRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "10", "10:00:00", "ab:cd", "25:00", "24:01", "10:60", "-1:30"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "200", FormatAmount(200))
	assert.Equal(t, "150.5", FormatAmount(150.5))
	assert.Equal(t, "99.99", FormatAmount(99.99))
}
