package timesheet

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type TimesheetServiceImpl struct {
	timesheet.DayRecordRepository
	timesheet.ScheduleLookup
	timesheet.JobRepository

	policy worktime.QuotaPolicy
	loc    *time.Location
	now    func() time.Time
}

// GetDay implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetDay(ctx context.Context, date string) (timesheet.DayResponse, error) {
	state, err := s.loadDay(ctx, date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	return s.dayResponse(state), nil
}

// SaveDayConfig implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) SaveDayConfig(ctx context.Context, date string, req timesheet.DayConfigRequest) (timesheet.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.DayResponse{}, err
	}

	state, err := s.loadDay(ctx, date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	if state.ReadOnly() {
		return timesheet.DayResponse{}, timesheet.ErrRecordLocked
	}

	// Validate already snapped both times to the grid
	entry := worktime.MustParseTime(req.EntryTime)
	exit := worktime.MustParseTime(req.ExitTime)
	span := worktime.DeriveSpan(entry, exit)

	if err := ReconcileDay(span, state.Activities, s.loc); err != nil {
		return timesheet.DayResponse{}, err
	}

	config := newDayConfig(state.Date, entry, exit)
	config.Shift = worktime.Shift(req.Shift)
	config.IsFreeDay = req.IsFreeDay
	config.IsContinuousShift = req.IsContinuousShift
	config.EmployeeComment = trimmedOrNil(req.EmployeeComment)

	record, err := s.recordForWrite(ctx, state)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	record.Config = config

	return s.save(ctx, state, record)
}

// CreateActivity implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CreateActivity(ctx context.Context, date string, req timesheet.ActivityRequest) (timesheet.DayResponse, error) {
	return s.saveActivity(ctx, date, NewActivity, req)
}

// UpdateActivity implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) UpdateActivity(ctx context.Context, date string, index int, req timesheet.ActivityRequest) (timesheet.DayResponse, error) {
	if index < 0 {
		return timesheet.DayResponse{}, timesheet.ErrActivityNotFound
	}
	return s.saveActivity(ctx, date, index, req)
}

// DeleteActivity implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) DeleteActivity(ctx context.Context, date string, index int) (timesheet.DayResponse, error) {
	state, err := s.loadDay(ctx, date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	if state.ReadOnly() {
		return timesheet.DayResponse{}, timesheet.ErrRecordLocked
	}
	if state.Record == nil || index < 0 || index >= len(state.Activities) {
		return timesheet.DayResponse{}, timesheet.ErrActivityNotFound
	}

	record := *state.Record
	record.Activities = slices.Delete(slices.Clone(state.Activities), index, index+1)

	return s.save(ctx, state, record)
}

// ValidateActivity implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ValidateActivity(ctx context.Context, date string, index int, req timesheet.ActivityRequest) (timesheet.ValidateActivityResponse, error) {
	state, err := s.loadDay(ctx, date)
	if err != nil {
		return timesheet.ValidateActivityResponse{}, err
	}
	if index != NewActivity && (index < 0 || index >= len(state.Activities)) {
		return timesheet.ValidateActivityResponse{}, timesheet.ErrActivityNotFound
	}

	result := ValidateActivity(state, req, index)
	resp := timesheet.ValidateActivityResponse{
		Valid:         result.Valid(),
		ComputedHours: result.ComputedHours,
	}
	if !result.Valid() {
		resp.Errors = result.Errors.ToMap()
		resp.Issues = result.Errors
	}
	return resp, nil
}

// ListJobs implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListJobs(ctx context.Context) ([]timesheet.JobResponse, error) {
	jobs, err := s.JobRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	resp := make([]timesheet.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, timesheet.JobResponse{ID: j.ID, Code: j.Code, Name: j.Name})
	}
	return resp, nil
}

func (s *TimesheetServiceImpl) saveActivity(ctx context.Context, date string, index int, req timesheet.ActivityRequest) (timesheet.DayResponse, error) {
	state, err := s.loadDay(ctx, date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	if state.ReadOnly() {
		return timesheet.DayResponse{}, timesheet.ErrRecordLocked
	}
	if index != NewActivity && index >= len(state.Activities) {
		return timesheet.DayResponse{}, timesheet.ErrActivityNotFound
	}

	result := ValidateActivity(state, req, index)
	if !result.Valid() {
		return timesheet.DayResponse{}, result.Errors
	}

	activity, err := s.buildActivity(state, req, result)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	record, err := s.recordForWrite(ctx, state)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	activities := slices.Clone(state.Activities)
	if index == NewActivity {
		activities = append(activities, activity)
	} else {
		activity.ID = activities[index].ID
		activities[index] = activity
	}
	record.Activities = activities

	return s.save(ctx, state, record)
}

// buildActivity turns an accepted request into the stored form. Overtime keeps
// its computed hours and anchors its times on the record date.
func (s *TimesheetServiceImpl) buildActivity(state DayState, req timesheet.ActivityRequest, result ActivityValidation) (timesheet.Activity, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Activity{}, fmt.Errorf("failed to generate activity ID: %w", err)
	}

	activity := timesheet.Activity{
		ID:          id.String(),
		JobID:       strings.TrimSpace(req.JobID),
		Description: strings.TrimSpace(req.Description),
		IsOvertime:  req.IsOvertime,
		ClassName:   trimmedOrNil(req.ClassName),
	}

	if req.IsOvertime {
		endDays := 0
		if *result.End <= *result.Start {
			endDays = 1
		}
		start := worktime.At(state.Date, *result.Start, 0)
		end := worktime.At(state.Date, *result.End, endDays)
		activity.StartTime, activity.EndTime = &start, &end
		activity.DurationHours = *result.ComputedHours
	} else {
		activity.DurationHours = worktime.RoundHours(*req.DurationHours)
	}

	return activity, nil
}

func (s *TimesheetServiceImpl) loadDay(ctx context.Context, date string) (DayState, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return DayState{}, err
	}

	day, key, err := s.resolveDate(date)
	if err != nil {
		return DayState{}, err
	}

	record, err := s.DayRecordRepository.GetByDate(ctx, userID, key)
	if err != nil {
		return DayState{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	schedule, err := s.ScheduleLookup.GetWorkSchedule(ctx, userID, key)
	if err != nil {
		slog.Warn("Failed to get work schedule, continuing with the day configuration", "user_id", userID, "date", key, "error", err)
		schedule = nil
	}

	return NewDayState(day, record, schedule, s.policy), nil
}

func (s *TimesheetServiceImpl) resolveDate(date string) (time.Time, string, error) {
	if strings.TrimSpace(date) == "" {
		date = worktime.DateKey(s.now(), s.loc)
	}
	day, err := worktime.ParseDateKey(date, s.loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %s", timesheet.ErrInvalidDate, date)
	}
	return day, date, nil
}

// recordForWrite returns a copy of the day's record, or a fresh one seeded
// with the effective config.
func (s *TimesheetServiceImpl) recordForWrite(ctx context.Context, state DayState) (timesheet.DayRecord, error) {
	if state.Record != nil {
		return *state.Record, nil
	}
	userID, err := currentUserID(ctx)
	if err != nil {
		return timesheet.DayRecord{}, err
	}
	record := timesheet.DayRecord{UserID: userID, Date: state.Date}
	if state.Config != nil {
		record.Config = *state.Config
	}
	return record, nil
}

func (s *TimesheetServiceImpl) save(ctx context.Context, state DayState, record timesheet.DayRecord) (timesheet.DayResponse, error) {
	saved, err := s.DayRecordRepository.Upsert(ctx, record)
	if err != nil {
		return timesheet.DayResponse{}, fmt.Errorf("failed to save daily record: %w", err)
	}
	return s.dayResponse(NewDayState(state.Date, &saved, state.Schedule, s.policy)), nil
}

func (s *TimesheetServiceImpl) dayResponse(state DayState) timesheet.DayResponse {
	progress := state.Progress(NewActivity)

	resp := timesheet.DayResponse{
		Date:        worktime.DateKey(state.Date, s.loc),
		HasRecord:   state.Record != nil,
		ReadOnly:    state.ReadOnly(),
		Config:      configResponse(state),
		QuotaHours:  state.QuotaHours,
		QuotaSource: state.QuotaSrc,
		// A day without normal hours only accepts overtime
		ForceOvertime: state.QuotaHours == 0,
		Progress: timesheet.ProgressResponse{
			NormalHoursWorked: progress.NormalHoursWorked,
			QuotaHours:        progress.QuotaHours,
			Percent:           progress.Percent,
			DisplayPercent:    progress.DisplayPercent(),
			RemainingHours:    progress.RemainingHours,
			Complete:          progress.Complete,
			OvertimeEligible:  progress.OvertimeEligible,
			Message:           progress.Message,
		},
		Activities: s.activityResponses(state),
	}

	if state.Schedule != nil {
		if state.Schedule.ScheduleType != "" {
			scheduleType := state.Schedule.ScheduleType
			resp.ScheduleType = &scheduleType
			resp.ShowShiftSelector = scheduleType == worktime.ScheduleTypeH2
		}
		resp.HolidayName = state.Schedule.HolidayName
	}

	return resp
}

func configResponse(state DayState) timesheet.DayConfigResponse {
	resp := timesheet.DayConfigResponse{Shift: string(worktime.ShiftDay)}
	if state.Config == nil {
		return resp
	}

	if state.Config.Shift != "" {
		resp.Shift = string(state.Config.Shift)
	}
	resp.IsFreeDay = state.Config.IsFreeDay
	resp.IsContinuousShift = state.Config.IsContinuousShift
	resp.EmployeeComment = state.Config.EmployeeComment
	if state.HasSpan {
		entry, exit := state.Span.Entry().String(), state.Span.Exit().String()
		resp.EntryTime, resp.ExitTime = &entry, &exit
		resp.CrossesMidnight = state.Span.CrossesMidnight
	}
	return resp
}

// activityResponses lists normal activities first, then overtime by start.
// Index stays the position in the stored list.
func (s *TimesheetServiceImpl) activityResponses(state DayState) []timesheet.ActivityResponse {
	type indexed struct {
		index int
		act   timesheet.Activity
	}
	ordered := make([]indexed, 0, len(state.Activities))
	for i, act := range state.Activities {
		ordered = append(ordered, indexed{index: i, act: act})
	}
	slices.SortStableFunc(ordered, func(a, b indexed) int {
		if a.act.IsOvertime != b.act.IsOvertime {
			if a.act.IsOvertime {
				return 1
			}
			return -1
		}
		if !a.act.IsOvertime {
			return 0
		}
		return cmp.Compare(startUnix(a.act), startUnix(b.act))
	})

	resp := make([]timesheet.ActivityResponse, 0, len(ordered))
	for _, item := range ordered {
		act := item.act
		r := timesheet.ActivityResponse{
			Index:          item.index,
			ID:             act.ID,
			JobID:          act.JobID,
			JobCode:        act.JobCode,
			JobName:        act.JobName,
			Description:    act.Description,
			DurationHours:  act.DurationHours,
			EffectiveHours: state.EffectiveHours(act),
			IsOvertime:     act.IsOvertime,
			ClassName:      act.ClassName,
		}
		if start, end, ok := act.Clocks(s.loc); ok {
			startStr, endStr := start.String(), end.String()
			r.StartTime, r.EndTime = &startStr, &endStr
		}
		resp = append(resp, r)
	}
	return resp
}

func startUnix(act timesheet.Activity) int64 {
	if act.StartTime == nil {
		return 0
	}
	return act.StartTime.Unix()
}

func currentUserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", timesheet.ErrUserIDRequired
	}
	return userID, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func NewTimesheetService(
	recordRepo timesheet.DayRecordRepository,
	scheduleLookup timesheet.ScheduleLookup,
	jobRepo timesheet.JobRepository,
	policy worktime.QuotaPolicy,
	loc *time.Location,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		DayRecordRepository: recordRepo,
		ScheduleLookup:      scheduleLookup,
		JobRepository:       jobRepo,
		policy:              policy,
		loc:                 loc,
		now:                 time.Now,
	}
}
