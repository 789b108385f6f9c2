package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
)

// ReconcileDay rejects a new workday span that would leave timed activities
// outside it. Activities without times are never affected.
func ReconcileDay(span worktime.DaySpan, activities []timesheet.Activity, loc *time.Location) error {
	var stranded []timesheet.StrandedActivity
	for i, act := range activities {
		start, end, ok := act.Clocks(loc)
		if !ok {
			continue
		}
		s, e := span.Interval(start, end)
		if s < span.Start || e > span.End {
			stranded = append(stranded, timesheet.StrandedActivity{
				Index: i,
				JobID: jobLabel(act),
				Start: start.String(),
				End:   end.String(),
			})
		}
	}

	if len(stranded) == 0 {
		return nil
	}
	return &timesheet.OutOfRangeError{Range: span.String(), Activities: stranded}
}

func jobLabel(act timesheet.Activity) string {
	if act.JobCode != nil && *act.JobCode != "" {
		return *act.JobCode
	}
	return act.JobID
}
