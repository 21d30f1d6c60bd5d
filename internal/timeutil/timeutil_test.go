package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2026-08-28", NormalizeDate("08/28/2026"))
	assert.Equal(t, "2026-08-28", NormalizeDate("2026-08-28"))
	assert.Equal(t, "not-a-date", NormalizeDate("not-a-date"))
	assert.Equal(t, "8/28/2026", NormalizeDate("8/28/2026"), "single-digit forms pass through")
}

func TestStoreLocationEnv(t *testing.T) {
	t.Setenv("STORE_TZ", "America/New_York")
	assert.Equal(t, "America/New_York", StoreLocation().String())

	t.Setenv("STORE_TZ", "Not/AZone")
	assert.Equal(t, time.UTC, StoreLocation())

	t.Setenv("STORE_TZ", "")
	assert.Equal(t, "America/Phoenix", StoreLocation().String())
}

func TestLocalDateCrossesMidnight(t *testing.T) {
	t.Setenv("STORE_TZ", "America/Phoenix")

	// 05:00 UTC is still the previous evening in Phoenix (UTC-7, no DST).
	utc := time.Date(2026, 8, 28, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-27", LocalDate(utc))

	utc = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-28", LocalDate(utc))
}

func TestDayBounds(t *testing.T) {
	t.Setenv("STORE_TZ", "America/Phoenix")

	from, to, err := DayBounds("2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 7, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 29, 7, 0, 0, 0, time.UTC), to)
	assert.Equal(t, 24*time.Hour, to.Sub(from))

	_, _, err = DayBounds("nope")
	require.Error(t, err)
}
