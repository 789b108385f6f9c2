package worktime

import (
	"fmt"
	"time"
)

// DaySpan is the workday [Start, End) in minutes. When the span crosses
// midnight End is stored past 1440, so Start < End always holds.
type DaySpan struct {
	Start           int
	End             int
	CrossesMidnight bool
}

// DeriveSpan builds the span between entry and exit. An exit at or before the
// entry is taken to be on the next day.
func DeriveSpan(entry, exit TimeOfDay) DaySpan {
	span := DaySpan{Start: int(entry), End: int(exit)}
	if exit <= entry {
		span.CrossesMidnight = true
		span.End += MinutesPerDay
	}
	return span
}

func (s DaySpan) Entry() TimeOfDay { return TimeOfDay(s.Start) }
func (s DaySpan) Exit() TimeOfDay  { return TimeOfDay(s.End % MinutesPerDay) }

func (s DaySpan) Minutes() int { return s.End - s.Start }

// Normalize places t on the span's timeline.
func (s DaySpan) Normalize(t TimeOfDay) int {
	return NormalizeAgainstSpan(t, TimeOfDay(s.Start), s.CrossesMidnight)
}

// Interval normalizes [start, end) against the span and pushes end past
// midnight when it does not follow start.
func (s DaySpan) Interval(start, end TimeOfDay) (int, int) {
	a, b := s.Normalize(start), s.Normalize(end)
	if b <= a {
		b += MinutesPerDay
	}
	return a, b
}

func (s DaySpan) String() string {
	return fmt.Sprintf("%s - %s", s.Entry(), s.Exit())
}

// Shift is the day/night label of a workday.
type Shift string

const (
	ShiftDay   Shift = "D"
	ShiftNight Shift = "N"
)

func (s Shift) Valid() bool {
	return s == ShiftDay || s == ShiftNight
}

// Workday is the part of a day configuration the quota depends on.
type Workday struct {
	Entry           *TimeOfDay
	Exit            *TimeOfDay
	ContinuousShift bool
	Shift           Shift
}

// Span returns the workday span, or false when entry or exit is missing.
func (w Workday) Span() (DaySpan, bool) {
	if w.Entry == nil || w.Exit == nil {
		return DaySpan{}, false
	}
	return DeriveSpan(*w.Entry, *w.Exit), true
}

// LunchDeduction reports whether the lunch window is deducted from intervals.
func (w Workday) LunchDeduction() bool {
	return !w.ContinuousShift
}

// ScheduleTypeH2 is the rotating schedule that lets employees pick a shift.
const ScheduleTypeH2 = "H2"

// QuotaRule replaces the derived quota for one schedule type, shift and weekday.
type QuotaRule struct {
	ScheduleType string
	Shift        Shift
	Weekday      time.Weekday
	Hours        float64
}

// QuotaPolicy holds the lunch deduction and the named quota overrides.
type QuotaPolicy struct {
	LunchMinutes int
	Rules        []QuotaRule
}

// DefaultQuotaPolicy deducts one hour of lunch and caps the H2 Tuesday night
// shift at 6 hours.
func DefaultQuotaPolicy() QuotaPolicy {
	return QuotaPolicy{
		LunchMinutes: 60,
		Rules: []QuotaRule{
			{ScheduleType: ScheduleTypeH2, Shift: ShiftNight, Weekday: time.Tuesday, Hours: 6},
		},
	}
}

// Override returns the fixed quota of the first matching rule.
func (p QuotaPolicy) Override(scheduleType string, shift Shift, weekday time.Weekday) (float64, bool) {
	for _, r := range p.Rules {
		if r.ScheduleType == scheduleType && r.Shift == shift && r.Weekday == weekday {
			return r.Hours, true
		}
	}
	return 0, false
}

// QuotaHours derives the normal-hours quota of a workday. Overrides win over
// everything else, including a missing entry or exit.
func (p QuotaPolicy) QuotaHours(w Workday, scheduleType string, weekday time.Weekday) (float64, error) {
	if hours, ok := p.Override(scheduleType, w.Shift, weekday); ok {
		return hours, nil
	}

	span, ok := w.Span()
	if !ok {
		return 0, ErrMissingConfig
	}

	minutes := span.Minutes()
	// Lunch is only deducted on shifts that stay within one day.
	if !w.ContinuousShift && !span.CrossesMidnight {
		minutes -= p.LunchMinutes
	}
	return MinutesToHours(max(0, minutes)), nil
}
