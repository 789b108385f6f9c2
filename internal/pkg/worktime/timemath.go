package worktime

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	QuarterHour   = 15

	// Lunch window, 12:00-13:00.
	LunchStart = 12 * 60
	LunchEnd   = 13 * 60
)

var (
	ErrInvalidFormat = errors.New("invalid time format, use HH:MM")
	ErrMissingConfig = errors.New("entry and exit time are required")
)

// TimeOfDay is a wall-clock time as minutes since midnight.
type TimeOfDay int

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTime parses a strict "HH:MM" wall-clock time.
func ParseTime(s string) (TimeOfDay, error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return TimeOfDay(h*60 + mm), nil
}

// ParseQuarterHour parses s and snaps it to the 15-minute grid. Times that
// round up to 24:00 wrap to 00:00.
func ParseQuarterHour(s string) (TimeOfDay, error) {
	t, err := ParseTime(s)
	if err != nil {
		return 0, err
	}
	return t.RoundToQuarterHour() % MinutesPerDay, nil
}

// MustParseTime is ParseTime for literals; it panics on bad input.
func MustParseTime(s string) TimeOfDay {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// RoundToQuarterHour rounds to the nearest multiple of 15 minutes. The result
// may be 1440 when rounding up from 23:53 or later.
func (t TimeOfDay) RoundToQuarterHour() TimeOfDay {
	return TimeOfDay(int(math.Round(float64(t)/QuarterHour)) * QuarterHour)
}

// String formats t as HH:MM, modulo one day.
func (t TimeOfDay) String() string {
	m := int(t) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// RoundToQuarterHour rounds an "HH:MM" string to the 15-minute grid.
func RoundToQuarterHour(s string) (string, error) {
	t, err := ParseQuarterHour(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// NormalizeAgainstSpan moves early-morning times after a late-night span start
// so both sit on one timeline.
func NormalizeAgainstSpan(t, spanStart TimeOfDay, crossesMidnight bool) int {
	if crossesMidnight && t < spanStart {
		return int(t) + MinutesPerDay
	}
	return int(t)
}

// OverlapMinutes returns the length of the intersection of [a1,a2) and [b1,b2).
func OverlapMinutes(a1, a2, b1, b2 int) int {
	return max(0, min(a2, b2)-max(a1, b1))
}

// RoundHours rounds h to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// MinutesToHours converts minutes to hours rounded to two decimals.
func MinutesToHours(m int) float64 {
	return RoundHours(float64(m) / 60)
}

// ClockOf returns the wall-clock time of an instant in loc.
func ClockOf(instant time.Time, loc *time.Location) TimeOfDay {
	local := instant.In(loc)
	return TimeOfDay(local.Hour()*60 + local.Minute())
}

// DateKey formats the calendar date of an instant in loc as YYYY-MM-DD.
func DateKey(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(time.DateOnly)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", key, err)
	}
	return d, nil
}

// At returns the instant for clock t on the calendar day of date, shifted by
// addDays.
func At(date time.Time, t TimeOfDay, addDays int) time.Time {
	m := int(t) % MinutesPerDay
	return time.Date(date.Year(), date.Month(), date.Day()+addDays, m/60, m%60, 0, 0, date.Location())
}
