package worktime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(s string) *TimeOfDay {
	t := MustParseTime(s)
	return &t
}

func TestDeriveSpan(t *testing.T) {
	day := DeriveSpan(MustParseTime("07:00"), MustParseTime("17:00"))
	assert.False(t, day.CrossesMidnight)
	assert.Equal(t, 420, day.Start)
	assert.Equal(t, 1020, day.End)
	assert.Equal(t, 600, day.Minutes())
	assert.Equal(t, "07:00 - 17:00", day.String())

	night := DeriveSpan(MustParseTime("22:00"), MustParseTime("06:00"))
	assert.True(t, night.CrossesMidnight)
	assert.Equal(t, 1320, night.Start)
	assert.Equal(t, 360+MinutesPerDay, night.End)
	assert.Equal(t, 480, night.Minutes())
	assert.Equal(t, MustParseTime("06:00"), night.Exit())
	assert.Less(t, night.Start, night.End)
}

func TestDaySpan_Interval(t *testing.T) {
	night := DeriveSpan(MustParseTime("22:00"), MustParseTime("06:00"))

	s, e := night.Interval(MustParseTime("23:00"), MustParseTime("01:00"))
	assert.Equal(t, 1380, s)
	assert.Equal(t, 60+MinutesPerDay, e)

	day := DeriveSpan(MustParseTime("07:00"), MustParseTime("17:00"))
	s, e = day.Interval(MustParseTime("23:00"), MustParseTime("01:00"))
	assert.Equal(t, 1380, s)
	assert.Equal(t, 60+MinutesPerDay, e)
}

func TestQuotaHours(t *testing.T) {
	policy := DefaultQuotaPolicy()
	cases := []struct {
		name string
		day  Workday
		want float64
	}{
		{"day shift with lunch", Workday{Entry: clock("07:00"), Exit: clock("17:00")}, 9},
		{"overnight shift never deducts lunch", Workday{Entry: clock("22:00"), Exit: clock("06:00")}, 8},
		{"continuous shift", Workday{Entry: clock("07:00"), Exit: clock("16:00"), ContinuousShift: true}, 9},
		{"regular shift", Workday{Entry: clock("07:00"), Exit: clock("16:00")}, 8},
		{"short day clamps at zero", Workday{Entry: clock("07:00"), Exit: clock("07:30")}, 0},
		{"quarter hours", Workday{Entry: clock("07:15"), Exit: clock("16:45")}, 8.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := policy.QuotaHours(c.day, "H1", time.Monday)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestQuotaHours_Override(t *testing.T) {
	policy := DefaultQuotaPolicy()
	night := Workday{Entry: clock("22:00"), Exit: clock("06:00"), Shift: ShiftNight}

	got, err := policy.QuotaHours(night, "H2", time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	got, err = policy.QuotaHours(night, "H2", time.Wednesday)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)

	got, err = policy.QuotaHours(night, "H1", time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)

	dayShift := night
	dayShift.Shift = ShiftDay
	got, err = policy.QuotaHours(dayShift, "H2", time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)

	// The override does not need entry and exit.
	got, err = policy.QuotaHours(Workday{Shift: ShiftNight}, "H2", time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
}

func TestQuotaHours_MissingConfig(t *testing.T) {
	policy := DefaultQuotaPolicy()
	_, err := policy.QuotaHours(Workday{Entry: clock("07:00")}, "H1", time.Monday)
	assert.True(t, errors.Is(err, ErrMissingConfig))

	_, ok := Workday{Exit: clock("07:00")}.Span()
	assert.False(t, ok)
}

func TestShift_Valid(t *testing.T) {
	assert.True(t, ShiftDay.Valid())
	assert.True(t, ShiftNight.Valid())
	assert.False(t, Shift("X").Valid())
}
