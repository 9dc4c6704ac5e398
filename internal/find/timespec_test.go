package vexyglob

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeUnix(t *testing.T) {
	got, err := ParseTime("1700000000")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1700000000, 0), got)

	got, err = ParseTime("1700000000.5")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Unix(1700000000, 500000000), got, time.Millisecond)
}

func TestParseTimeISO(t *testing.T) {
	got, err := ParseTime("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), got)

	got, err = ParseTime("2024-01-15T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local), got)

	got, err = ParseTime("2024-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))

	got, err = ParseTime("2024-01-15T10:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)))
}

func TestParseTimeRelative(t *testing.T) {
	tests := []struct {
		spec string
		want time.Duration
	}{
		{"-45s", 45 * time.Second},
		{"-30m", 30 * time.Minute},
		{"-2h", 2 * time.Hour},
		{"-1d", 24 * time.Hour},
		{"-1.5h", 90 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseTime(tt.spec)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(-tt.want), got, 2*time.Second)
		})
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, spec := range []string{"", "yesterday", "2024-13-99", "-1x", "10:30"} {
		_, err := ParseTime(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}
