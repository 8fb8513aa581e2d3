package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHM(t *testing.T) {
	cases := []struct {
		in   string
		h, m uint
	}{
		{"08:00", 8, 0},
		{"21:30", 21, 30},
		{"0:5", 0, 5},
		{" 13:00 ", 13, 0},
		{"23:59", 23, 59},
	}
	for _, c := range cases {
		h, m, err := parseHM(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.h, h, c.in)
		assert.Equal(t, c.m, m, c.in)
	}

	for _, bad := range []string{"", "8", "24:00", "12:60", "ab:cd", "12:", "-1:00"} {
		_, _, err := parseHM(bad)
		assert.Error(t, err, bad)
	}
}
