package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
)

// DayRecord is one employee's timesheet for one calendar day. It is rewritten
// as a whole on every change.
type DayRecord struct {
	ID                 string
	UserID             string
	Date               time.Time
	Config             DayConfig
	Activities         []Activity
	SupervisorApproved bool
	HRApproved         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReadOnly reports whether an approval froze the record.
func (r DayRecord) ReadOnly() bool {
	return r.SupervisorApproved || r.HRApproved
}

type DayConfig struct {
	EntryTime         time.Time
	ExitTime          time.Time
	Shift             worktime.Shift
	IsFreeDay         bool
	IsContinuousShift bool
	EmployeeComment   *string
}

// Workday returns the wall-clock view of the config in loc.
func (c DayConfig) Workday(loc *time.Location) worktime.Workday {
	entry := worktime.ClockOf(c.EntryTime, loc)
	exit := worktime.ClockOf(c.ExitTime, loc)
	return worktime.Workday{
		Entry:           &entry,
		Exit:            &exit,
		ContinuousShift: c.IsContinuousShift,
		Shift:           c.Shift,
	}
}

// Activity is a unit of work logged against a job. Normal activities carry an
// operator-entered duration and no times; overtime activities always carry
// start and end and their duration is derived.
type Activity struct {
	ID            string
	JobID         string
	Description   string
	DurationHours float64
	IsOvertime    bool
	ClassName     *string
	StartTime     *time.Time
	EndTime       *time.Time

	// DTO
	JobCode *string
	JobName *string
}

// HasInterval reports whether the activity carries both start and end.
func (a Activity) HasInterval() bool {
	return a.StartTime != nil && a.EndTime != nil
}

// Clocks returns the wall-clock start and end in loc.
func (a Activity) Clocks(loc *time.Location) (worktime.TimeOfDay, worktime.TimeOfDay, bool) {
	if !a.HasInterval() {
		return 0, 0, false
	}
	return worktime.ClockOf(*a.StartTime, loc), worktime.ClockOf(*a.EndTime, loc), true
}

// Entry returns the duration-relevant view of the activity in loc.
func (a Activity) Entry(loc *time.Location) worktime.Entry {
	e := worktime.Entry{Hours: a.DurationHours}
	if start, end, ok := a.Clocks(loc); ok {
		e.Start, e.End = &start, &end
	}
	return e
}

type Job struct {
	ID       string
	Code     string
	Name     string
	IsActive bool
}

// WorkSchedule is the scheduled day of an employee, used when no record
// exists yet or when the record cannot yield a quota.
type WorkSchedule struct {
	ScheduleType string
	EntryTime    *string // HH:MM
	ExitTime     *string // HH:MM
	QuotaHours   float64
	IsFreeDay    bool
	HolidayName  *string
}
