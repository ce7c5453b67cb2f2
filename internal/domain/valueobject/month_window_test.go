package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarMonth(t *testing.T) {
	t.Run("utc window", func(t *testing.T) {
		w := CalendarMonth(time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC), nil)
		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("december rolls into the next year", func(t *testing.T) {
		w := CalendarMonth(time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC), time.UTC)
		assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("location shifts the month", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*60*60)
		w := CalendarMonth(time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC), loc)
		assert.Equal(t, time.February, w.Start.Month())
	})
}

func TestMonthWindow_Contains(t *testing.T) {
	w := CalendarMonth(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), nil)

	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}

func TestParseMonth(t *testing.T) {
	w, err := ParseMonth("2024-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), w.Start)

	_, err = ParseMonth("July 2024")
	assert.Error(t, err)
}
