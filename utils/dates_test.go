package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestNormalizeDateRejectsOtherFormats(t *testing.T) {
	for _, bad := range []string{"01/05/2024", "2024-5-1", "2024-05-01T10:00:00Z", "yesterday", ""} {
		_, err := NormalizeDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	day, err := NormalizeDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", FormatDate(day))
}

func TestTodayIsUTCMidnight(t *testing.T) {
	today := Today()
	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
}
