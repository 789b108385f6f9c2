package timesheet

import (
	"errors"
	"fmt"
	"strings"
)

// Timesheet domain errors
var (
	ErrActivityNotFound     = errors.New("activity not found")
	ErrRecordLocked         = errors.New("daily record has been approved and can no longer be modified")
	ErrActivitiesOutOfRange = errors.New("activities fall outside the new workday range")
	ErrInvalidDate          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrUserIDRequired       = errors.New("user ID is required")
)

// Validation codes carried by field errors.
const (
	CodeRequiredFieldMissing    = "REQUIRED_FIELD_MISSING"
	CodeInvalidFormat           = "INVALID_FORMAT"
	CodeMissingConfig           = "MISSING_CONFIG"
	CodeOvertimeNotEligible     = "OVERTIME_NOT_ELIGIBLE"
	CodeMissingTimeFields       = "MISSING_TIME_FIELDS"
	CodeInvalidComputedDuration = "INVALID_COMPUTED_DURATION"
	CodeInvalidDuration         = "INVALID_DURATION"
	CodeExceedsRemainingQuota   = "EXCEEDS_REMAINING_QUOTA"
	CodeOvertimeWithinWorkday   = "OVERTIME_WITHIN_WORKDAY"
	CodeInvertedInterval        = "INVERTED_INTERVAL"
	CodeOverlappingActivity     = "OVERLAPPING_ACTIVITY"
	CodeDayHasNoNormalHours     = "DAY_HAS_NO_NORMAL_HOURS"
	CodeActivitiesOutOfRange    = "ACTIVITIES_OUT_OF_RANGE"
)

// Field names used in validation output.
const (
	FieldDescription   = "description"
	FieldJobID         = "job_id"
	FieldIsOvertime    = "is_overtime"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldDurationHours = "duration_hours"
	FieldEntryTime     = "entry_time"
	FieldExitTime      = "exit_time"
	FieldShift         = "shift"
)

// maxOutOfRangeSamples bounds the activities listed in an OutOfRangeError.
const maxOutOfRangeSamples = 3

// StrandedActivity is an existing activity that a new workday range leaves
// outside its bounds.
type StrandedActivity struct {
	Index int
	JobID string
	Start string
	End   string
}

func (s StrandedActivity) String() string {
	return fmt.Sprintf("Act %d (%s) %s-%s", s.Index+1, s.JobID, s.Start, s.End)
}

// OutOfRangeError rejects a day-config change that strands activities.
type OutOfRangeError struct {
	Range      string
	Activities []StrandedActivity
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("hay %d actividad(es) fuera del nuevo rango (%s); actualiza las actividades primero: %s",
		e.Count(), e.Range, strings.Join(e.sampleStrings(), ", "))
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrActivitiesOutOfRange
}

func (e *OutOfRangeError) Count() int {
	return len(e.Activities)
}

// Samples returns the first few stranded activities.
func (e *OutOfRangeError) Samples() []StrandedActivity {
	if len(e.Activities) <= maxOutOfRangeSamples {
		return e.Activities
	}
	return e.Activities[:maxOutOfRangeSamples]
}

func (e *OutOfRangeError) sampleStrings() []string {
	var out []string
	for _, s := range e.Samples() {
		out = append(out, s.String())
	}
	return out
}
