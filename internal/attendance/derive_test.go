package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDay_FullDay(t *testing.T) {
	got := DeriveDay("2026-01-05", []string{"09:00", "17:00"}, true)
	assert.Equal(t, StatusPresent, got.Status)
	assert.Equal(t, "09:00", got.FirstIn)
	assert.Equal(t, "17:00", got.LastOut)
	assert.Equal(t, 480, got.WorkedMinutes)
}

func TestDeriveDay_HalfDayBoundary(t *testing.T) {
	got := DeriveDay("2026-01-05", []string{"09:00", "14:00"}, true)
	assert.Equal(t, StatusHalfDay, got.Status)
	assert.Equal(t, 300, got.WorkedMinutes)
}

func TestDeriveDay_JustUnderHalfDay(t *testing.T) {
	got := DeriveDay("2026-01-05", []string{"09:00", "13:59"}, true)
	assert.Equal(t, StatusAbsent, got.Status)
	assert.Equal(t, 299, got.WorkedMinutes)
}

func TestDeriveDay_NoPunchesFutureDate(t *testing.T) {
	got := DeriveDay("2026-01-05", nil, false)
	assert.Equal(t, StatusPending, got.Status)
	assert.Zero(t, got.WorkedMinutes)
	assert.Empty(t, got.FirstIn)
}

func TestDeriveDay_NoPunchesPastDate(t *testing.T) {
	got := DeriveDay("2026-01-05", nil, true)
	assert.Equal(t, StatusAbsent, got.Status)
}

func TestDeriveDay_SinglePunch(t *testing.T) {
	got := DeriveDay("2026-01-05", []string{"09:00"}, true)
	assert.Equal(t, StatusAbsent, got.Status)
	assert.Equal(t, "09:00", got.FirstIn)
	assert.Equal(t, "09:00", got.LastOut)
	assert.Zero(t, got.WorkedMinutes)
}

func TestDeriveDay_UnsortedPunches(t *testing.T) {
	got := DeriveDay("2026-01-05", []string{"12:15", "08:30", "17:45"}, true)
	assert.Equal(t, "08:30", got.FirstIn)
	assert.Equal(t, "17:45", got.LastOut)
	assert.Equal(t, StatusPresent, got.Status)
}

func TestMonthSummaries_CoversEveryDate(t *testing.T) {
	today := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	byDate := map[string][]string{
		"2026-01-05": {"09:00", "17:00"},
	}

	days, err := MonthSummaries("2026-01", byDate, today)
	require.NoError(t, err)
	require.Len(t, days, 31)

	assert.Equal(t, "2026-01-01", days[0].Date)
	assert.Equal(t, StatusAbsent, days[0].Status)
	assert.Equal(t, StatusPresent, days[4].Status)
	// the 15th itself has not passed yet
	assert.Equal(t, StatusPending, days[14].Status)
	assert.Equal(t, StatusPending, days[30].Status)
}

func TestMonthSummaries_LeapFebruary(t *testing.T) {
	today := time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC)
	days, err := MonthSummaries("2028-02", nil, today)
	require.NoError(t, err)
	assert.Len(t, days, 29)
}

func TestMonthSummaries_InvalidMonth(t *testing.T) {
	_, err := MonthSummaries("garbage", nil, time.Now())
	assert.Error(t, err)
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange("2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", from)
	assert.Equal(t, "2026-02-28", to)
}
