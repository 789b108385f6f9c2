package timesheet

import (
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
)

// Quota sources reported with the day view.
const (
	QuotaSourceConfig   = "config"
	QuotaSourceSchedule = "schedule"
	QuotaSourceNone     = "none"
)

// DayState is everything the validation rules read about one day. It is a
// value: building it has no side effects and nothing mutates it afterwards.
type DayState struct {
	Date       time.Time // midnight of the day in the timesheet zone
	Record     *timesheet.DayRecord
	Schedule   *timesheet.WorkSchedule
	Config     *timesheet.DayConfig // record config, or one derived from the schedule
	Workday    worktime.Workday
	Span       worktime.DaySpan
	HasSpan    bool
	QuotaHours float64
	QuotaSrc   string
	Activities []timesheet.Activity
}

// NewDayState derives span and quota for a day. The record's own config wins
// over the schedule; the schedule's quota is only used when the config
// cannot yield one.
func NewDayState(date time.Time, record *timesheet.DayRecord, schedule *timesheet.WorkSchedule, policy worktime.QuotaPolicy) DayState {
	state := DayState{
		Date:     date,
		Record:   record,
		Schedule: schedule,
		Workday:  worktime.Workday{Shift: worktime.ShiftDay},
	}

	switch {
	case record != nil:
		cfg := record.Config
		state.Config = &cfg
		state.Activities = record.Activities
	case schedule != nil:
		state.Config = configFromSchedule(date, schedule)
	}

	if state.Config != nil {
		state.Workday = state.Config.Workday(date.Location())
		state.Span, state.HasSpan = state.Workday.Span()
	}

	quota, err := policy.QuotaHours(state.Workday, state.ScheduleType(), date.Weekday())
	switch {
	case err == nil:
		state.QuotaHours, state.QuotaSrc = quota, QuotaSourceConfig
	case errors.Is(err, worktime.ErrMissingConfig) && schedule != nil:
		state.QuotaHours, state.QuotaSrc = max(0, schedule.QuotaHours), QuotaSourceSchedule
	default:
		state.QuotaSrc = QuotaSourceNone
	}

	return state
}

func configFromSchedule(date time.Time, schedule *timesheet.WorkSchedule) *timesheet.DayConfig {
	if schedule.EntryTime == nil || schedule.ExitTime == nil {
		return nil
	}
	entry, err := worktime.ParseQuarterHour(*schedule.EntryTime)
	if err != nil {
		slog.Warn("Ignoring schedule entry time", "value", *schedule.EntryTime, "error", err)
		return nil
	}
	exit, err := worktime.ParseQuarterHour(*schedule.ExitTime)
	if err != nil {
		slog.Warn("Ignoring schedule exit time", "value", *schedule.ExitTime, "error", err)
		return nil
	}
	cfg := newDayConfig(date, entry, exit)
	cfg.IsFreeDay = schedule.IsFreeDay
	return &cfg
}

// newDayConfig anchors entry on date and moves exit to the next day when the
// span crosses midnight.
func newDayConfig(date time.Time, entry, exit worktime.TimeOfDay) timesheet.DayConfig {
	addDays := 0
	if worktime.DeriveSpan(entry, exit).CrossesMidnight {
		addDays = 1
	}
	return timesheet.DayConfig{
		EntryTime: worktime.At(date, entry, 0),
		ExitTime:  worktime.At(date, exit, addDays),
		Shift:     worktime.ShiftDay,
	}
}

func (s DayState) Location() *time.Location {
	return s.Date.Location()
}

func (s DayState) ScheduleType() string {
	if s.Schedule == nil {
		return ""
	}
	return s.Schedule.ScheduleType
}

func (s DayState) ReadOnly() bool {
	return s.Record != nil && s.Record.ReadOnly()
}

// NormalHours sums the stored hours of normal activities, skipping the one at
// exclude (-1 skips none).
func (s DayState) NormalHours(exclude int) float64 {
	var hours []float64
	for i, act := range s.Activities {
		if i == exclude || act.IsOvertime {
			continue
		}
		hours = append(hours, act.DurationHours)
	}
	return worktime.SumHours(hours...)
}

// Progress is the day's completion with the activity at exclude left out.
func (s DayState) Progress(exclude int) worktime.Progress {
	return worktime.CalculateProgress(s.NormalHours(exclude), s.QuotaHours)
}

// EffectiveHours recomputes an activity against the current span and
// continuous-shift flag.
func (s DayState) EffectiveHours(act timesheet.Activity) float64 {
	return worktime.EffectiveHours(act.Entry(s.Location()), s.Span, s.Workday.LunchDeduction())
}
