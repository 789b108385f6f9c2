package worktime

// ComputeFromInterval returns the hours between start and end. An end at or
// before start is on the next day. With lunchDeduction the part of the
// interval inside the lunch window, placed on the span's timeline, is removed.
func ComputeFromInterval(start, end TimeOfDay, span DaySpan, lunchDeduction bool) float64 {
	minutes := int(end) - int(start)
	if end <= start {
		minutes += MinutesPerDay
	}
	if lunchDeduction {
		s, e := span.Interval(start, end)
		minutes -= OverlapMinutes(s, e, LunchStart, LunchEnd)
	}
	return MinutesToHours(max(0, minutes))
}

// Entry is the duration-relevant part of an activity.
type Entry struct {
	Hours float64
	Start *TimeOfDay
	End   *TimeOfDay
}

func (e Entry) HasInterval() bool {
	return e.Start != nil && e.End != nil
}

// EffectiveHours returns the stored hours of a manually entered activity, or
// recomputes an interval activity against the current span and lunch setting.
// Interval activities therefore follow later changes to the day's
// continuous-shift flag without rewriting stored data.
func EffectiveHours(e Entry, span DaySpan, lunchDeduction bool) float64 {
	if !e.HasInterval() {
		return e.Hours
	}
	return ComputeFromInterval(*e.Start, *e.End, span, lunchDeduction)
}
