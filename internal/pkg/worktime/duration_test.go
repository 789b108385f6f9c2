package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFromInterval(t *testing.T) {
	day := DeriveSpan(MustParseTime("07:00"), MustParseTime("17:00"))
	night := DeriveSpan(MustParseTime("22:00"), MustParseTime("06:00"))

	cases := []struct {
		name       string
		start, end string
		span       DaySpan
		lunch      bool
		want       float64
	}{
		{"lunch fully inside", "09:00", "13:00", day, true, 3},
		{"no lunch overlap", "09:00", "11:00", day, true, 2},
		{"continuous shift keeps lunch", "09:00", "13:00", day, false, 4},
		{"partial lunch overlap", "12:30", "14:00", day, true, 1},
		{"interval inside lunch", "12:00", "13:00", day, true, 0},
		{"crosses midnight", "23:00", "01:00", day, true, 2},
		{"same start and end is a full day", "17:00", "17:00", day, false, 24},
		{"overnight span moves midday away from lunch", "12:00", "13:00", night, true, 1},
		{"after overnight shift", "06:00", "08:30", night, true, 2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeFromInterval(MustParseTime(c.start), MustParseTime(c.end), c.span, c.lunch)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEffectiveHours(t *testing.T) {
	day := DeriveSpan(MustParseTime("07:00"), MustParseTime("17:00"))

	manual := Entry{Hours: 3.75}
	assert.Equal(t, 3.75, EffectiveHours(manual, day, true))

	overtime := Entry{Hours: 99, Start: clock("11:00"), End: clock("14:00")}
	assert.Equal(t, 2.0, EffectiveHours(overtime, day, true))
	assert.Equal(t, 3.0, EffectiveHours(overtime, day, false))
}

func TestEffectiveHours_Idempotent(t *testing.T) {
	day := DeriveSpan(MustParseTime("07:00"), MustParseTime("17:00"))
	entry := Entry{Start: clock("17:00"), End: clock("19:15")}

	first := EffectiveHours(entry, day, true)
	second := EffectiveHours(entry, day, true)
	assert.Equal(t, first, second)
	assert.Equal(t, 2.25, first)
}
