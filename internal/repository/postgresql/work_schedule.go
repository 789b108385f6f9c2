package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

// GetWorkSchedule implements timesheet.ScheduleLookup.
// It returns nil when the user has no schedule assigned and the date is not a
// holiday.
func (w *workScheduleRepositoryImpl) GetWorkSchedule(ctx context.Context, userID string, date string) (*timesheet.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		-- QUERY: GetWorkSchedule
		SELECT
			ws.schedule_type,
			to_char(wst.clock_in_time, 'HH24:MI') AS entry_time,
			to_char(wst.clock_out_time, 'HH24:MI') AS exit_time,
			wst.quota_hours::float8,
			wst.is_free_day,
			h.name AS holiday_name
		FROM (SELECT $2::date AS day) d
		-- The most recent assignment covering the date wins
		LEFT JOIN LATERAL (
			SELECT work_schedule_id
			FROM employee_schedule_assignments
			WHERE user_id = $1
			  AND start_date <= d.day
			  AND (end_date IS NULL OR end_date >= d.day)
			ORDER BY start_date DESC
			LIMIT 1
		) esa ON TRUE
		LEFT JOIN work_schedules ws ON ws.id = esa.work_schedule_id AND ws.deleted_at IS NULL
		-- EXTRACT(ISODOW) is 1 (Monday) to 7 (Sunday)
		LEFT JOIN work_schedule_times wst ON wst.work_schedule_id = ws.id
			AND wst.day_of_week = EXTRACT(ISODOW FROM d.day)::int
		LEFT JOIN holidays h ON h.holiday_date = d.day
	`

	type workScheduleDTO struct {
		ScheduleType *string
		EntryTime    *string
		ExitTime     *string
		QuotaHours   *float64
		IsFreeDay    *bool
		HolidayName  *string
	}

	var dto workScheduleDTO
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&dto.ScheduleType,
		&dto.EntryTime,
		&dto.ExitTime,
		&dto.QuotaHours,
		&dto.IsFreeDay,
		&dto.HolidayName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	if dto.ScheduleType == nil && dto.HolidayName == nil {
		return nil, nil
	}

	schedule := &timesheet.WorkSchedule{
		EntryTime:   dto.EntryTime,
		ExitTime:    dto.ExitTime,
		HolidayName: dto.HolidayName,
	}
	if dto.ScheduleType != nil {
		schedule.ScheduleType = *dto.ScheduleType
	}
	if dto.QuotaHours != nil {
		schedule.QuotaHours = *dto.QuotaHours
	}
	if dto.IsFreeDay != nil {
		schedule.IsFreeDay = *dto.IsFreeDay
	}
	// Holidays are days off whatever the schedule says
	if dto.HolidayName != nil {
		schedule.IsFreeDay = true
	}

	return schedule, nil
}

func NewWorkScheduleRepository(db *database.DB) timesheet.ScheduleLookup {
	return &workScheduleRepositoryImpl{db: db}
}
