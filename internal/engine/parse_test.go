package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	day := func(d, h, m int) time.Time { return time.Date(2026, 10, d, h, m, 0, 0, time.UTC) }

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"none", time.Time{}},
		{"Today", day(14, 23, 59)},
		{"tomorrow", day(15, 23, 59)},
		{"+2h", day(14, 12, 0)},
		{"+3d", day(17, 10, 0)},
		{"+1w", day(21, 10, 0)},
		{"2026-10-21", day(21, 23, 59)},
		{"2026-10-21 18:00", day(21, 18, 0)},
		{"2026-10-21T18:00", day(21, 18, 0)},
		{"2026-10-21T18:00:00Z", day(21, 18, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDue(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseDue_Invalid(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	for _, in := range []string{"someday", "+xd", "+3y", "+-1d", "2026-13-01"} {
		_, err := ParseDue(in, now)
		assert.Error(t, err, in)
	}
}
