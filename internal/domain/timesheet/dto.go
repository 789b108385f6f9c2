package timesheet

import (
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
)

// ========================================
// DAY CONFIG DTOs
// ========================================

type DayConfigRequest struct {
	EntryTime         string  `json:"entry_time"` // HH:MM
	ExitTime          string  `json:"exit_time"`  // HH:MM
	Shift             string  `json:"shift"`      // D, N
	IsFreeDay         bool    `json:"is_free_day"`
	IsContinuousShift bool    `json:"is_continuous_shift"`
	EmployeeComment   *string `json:"employee_comment,omitempty"`
}

// Validate checks the request and snaps both times to the 15-minute grid.
func (r *DayConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntryTime) {
		errs.Add(FieldEntryTime, CodeRequiredFieldMissing, "La hora de entrada es obligatoria")
	} else if rounded, err := worktime.RoundToQuarterHour(r.EntryTime); err != nil {
		errs.Add(FieldEntryTime, CodeInvalidFormat, "La hora de entrada debe tener el formato HH:MM")
	} else {
		r.EntryTime = rounded
	}

	if validator.IsEmpty(r.ExitTime) {
		errs.Add(FieldExitTime, CodeRequiredFieldMissing, "La hora de salida es obligatoria")
	} else if rounded, err := worktime.RoundToQuarterHour(r.ExitTime); err != nil {
		errs.Add(FieldExitTime, CodeInvalidFormat, "La hora de salida debe tener el formato HH:MM")
	} else {
		r.ExitTime = rounded
	}

	if r.Shift == "" {
		r.Shift = string(worktime.ShiftDay) // Default shift
	}
	if !worktime.Shift(r.Shift).Valid() {
		errs.Add(FieldShift, CodeInvalidFormat, "shift must be 'D' or 'N'")
	}

	return errs.OrNil()
}

// ========================================
// ACTIVITY DTOs
// ========================================

// ActivityRequest is an activity as submitted from the day form. Validation
// needs the day's state, see the timesheet service.
type ActivityRequest struct {
	Description   string   `json:"description"`
	JobID         string   `json:"job_id"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	IsOvertime    bool     `json:"is_overtime"`
	ClassName     *string  `json:"class_name,omitempty"`
	StartTime     string   `json:"start_time,omitempty"` // HH:MM
	EndTime       string   `json:"end_time,omitempty"`   // HH:MM
}

type ActivityResponse struct {
	Index          int     `json:"index"`
	ID             string  `json:"id"`
	JobID          string  `json:"job_id"`
	JobCode        *string `json:"job_code,omitempty"`
	JobName        *string `json:"job_name,omitempty"`
	Description    string  `json:"description"`
	DurationHours  float64 `json:"duration_hours"`
	EffectiveHours float64 `json:"effective_hours"`
	IsOvertime     bool    `json:"is_overtime"`
	ClassName      *string `json:"class_name,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
}

type ValidateActivityResponse struct {
	Valid         bool                       `json:"valid"`
	ComputedHours *float64                   `json:"computed_hours,omitempty"`
	Errors        map[string]string          `json:"errors,omitempty"`
	Issues        validator.ValidationErrors `json:"issues,omitempty"`
}

// ========================================
// DAY DTOs
// ========================================

type DayConfigResponse struct {
	EntryTime         *string `json:"entry_time,omitempty"`
	ExitTime          *string `json:"exit_time,omitempty"`
	CrossesMidnight   bool    `json:"crosses_midnight"`
	Shift             string  `json:"shift"`
	IsFreeDay         bool    `json:"is_free_day"`
	IsContinuousShift bool    `json:"is_continuous_shift"`
	EmployeeComment   *string `json:"employee_comment,omitempty"`
}

type ProgressResponse struct {
	NormalHoursWorked float64 `json:"normal_hours_worked"`
	QuotaHours        float64 `json:"quota_hours"`
	Percent           float64 `json:"percent"`
	DisplayPercent    float64 `json:"display_percent"`
	RemainingHours    float64 `json:"remaining_hours"`
	Complete          bool    `json:"complete"`
	OvertimeEligible  bool    `json:"overtime_eligible"`
	Message           string  `json:"message"`
}

type DayResponse struct {
	Date              string             `json:"date"`
	HasRecord         bool               `json:"has_record"`
	ReadOnly          bool               `json:"read_only"`
	Config            DayConfigResponse  `json:"config"`
	ScheduleType      *string            `json:"schedule_type,omitempty"`
	ShowShiftSelector bool               `json:"show_shift_selector"`
	HolidayName       *string            `json:"holiday_name,omitempty"`
	QuotaHours        float64            `json:"quota_hours"`
	QuotaSource       string             `json:"quota_source"` // config, schedule, none
	ForceOvertime     bool               `json:"force_overtime"`
	Progress          ProgressResponse   `json:"progress"`
	Activities        []ActivityResponse `json:"activities"`
}

// ========================================
// JOB DTOs
// ========================================

type JobResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
