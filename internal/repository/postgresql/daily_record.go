package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type dailyRecordRepositoryImpl struct {
	db *database.DB
}

// GetByDate implements timesheet.DayRecordRepository.
func (r *dailyRecordRepositoryImpl) GetByDate(ctx context.Context, userID string, date string) (*timesheet.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, record_date, entry_time, exit_time, shift,
			   is_free_day, is_continuous_shift, employee_comment,
			   supervisor_approved, hr_approved, created_at, updated_at
		FROM daily_records
		WHERE user_id = $1 AND record_date = $2::date
	`

	var record timesheet.DayRecord
	var shift string
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&record.ID, &record.UserID, &record.Date, &record.Config.EntryTime, &record.Config.ExitTime, &shift,
		&record.Config.IsFreeDay, &record.Config.IsContinuousShift, &record.Config.EmployeeComment,
		&record.SupervisorApproved, &record.HRApproved, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily record: %w", err)
	}
	record.Config.Shift = worktime.Shift(shift)

	activities, err := r.listActivities(ctx, q, record.ID)
	if err != nil {
		return nil, err
	}
	record.Activities = activities

	return &record, nil
}

func (r *dailyRecordRepositoryImpl) listActivities(ctx context.Context, q database.Querier, recordID string) ([]timesheet.Activity, error) {
	query := `
		SELECT a.id, a.job_id, a.description, a.duration_hours::float8, a.is_overtime,
			   a.class_name, a.start_time, a.end_time, j.code, j.name
		FROM daily_activities a
		LEFT JOIN jobs j ON j.id = a.job_id
		WHERE a.daily_record_id = $1
		ORDER BY a.position
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily activities: %w", err)
	}
	defer rows.Close()

	var activities []timesheet.Activity
	for rows.Next() {
		var act timesheet.Activity
		if err := rows.Scan(
			&act.ID, &act.JobID, &act.Description, &act.DurationHours, &act.IsOvertime,
			&act.ClassName, &act.StartTime, &act.EndTime, &act.JobCode, &act.JobName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily activity: %w", err)
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily activities: %w", err)
	}

	return activities, nil
}

// Upsert implements timesheet.DayRecordRepository.
// The config row and the whole activity list are replaced in one transaction.
// An approved record is never overwritten.
func (r *dailyRecordRepositoryImpl) Upsert(ctx context.Context, record timesheet.DayRecord) (timesheet.DayRecord, error) {
	date := record.Date.Format(time.DateOnly)

	var saved *timesheet.DayRecord
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)

		recordID, err := r.upsertRecord(txCtx, record, date)
		if err != nil {
			return err
		}
		if err := r.replaceActivities(txCtx, recordID, record.Activities); err != nil {
			return err
		}

		saved, err = r.GetByDate(txCtx, record.UserID, date)
		if err != nil {
			return err
		}
		if saved == nil {
			return fmt.Errorf("daily record %s vanished after write", recordID)
		}
		return nil
	})
	if err != nil {
		return timesheet.DayRecord{}, err
	}

	return *saved, nil
}

func (r *dailyRecordRepositoryImpl) upsertRecord(ctx context.Context, record timesheet.DayRecord, date string) (string, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("failed to generate daily record ID: %w", err)
		}
		record.ID = id.String()
	}

	shift := record.Config.Shift
	if shift == "" {
		shift = worktime.ShiftDay
	}

	query := `
		INSERT INTO daily_records (
			id, user_id, record_date, entry_time, exit_time, shift,
			is_free_day, is_continuous_shift, employee_comment, created_at, updated_at
		) VALUES (
			$1, $2, $3::date, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
		ON CONFLICT (user_id, record_date) DO UPDATE SET
			entry_time = EXCLUDED.entry_time,
			exit_time = EXCLUDED.exit_time,
			shift = EXCLUDED.shift,
			is_free_day = EXCLUDED.is_free_day,
			is_continuous_shift = EXCLUDED.is_continuous_shift,
			employee_comment = EXCLUDED.employee_comment,
			updated_at = NOW()
		WHERE daily_records.supervisor_approved = FALSE
		  AND daily_records.hr_approved = FALSE
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.UserID, date, record.Config.EntryTime, record.Config.ExitTime, string(shift),
		record.Config.IsFreeDay, record.Config.IsContinuousShift, record.Config.EmployeeComment,
	).Scan(&id)
	if err != nil {
		// The conflict update skipped an approved row
		if errors.Is(err, pgx.ErrNoRows) {
			return "", timesheet.ErrRecordLocked
		}
		return "", fmt.Errorf("failed to upsert daily record: %w", err)
	}

	return id, nil
}

func (r *dailyRecordRepositoryImpl) replaceActivities(ctx context.Context, recordID string, activities []timesheet.Activity) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM daily_activities WHERE daily_record_id = $1`, recordID); err != nil {
		return fmt.Errorf("failed to clear daily activities: %w", err)
	}
	if len(activities) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_activities (
			id, daily_record_id, position, job_id, description, duration_hours,
			is_overtime, class_name, start_time, end_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	batch := &pgx.Batch{}
	for i, act := range activities {
		if act.ID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate activity ID: %w", err)
			}
			act.ID = id.String()
		}
		batch.Queue(query,
			act.ID, recordID, i, act.JobID, act.Description, act.DurationHours,
			act.IsOvertime, act.ClassName, act.StartTime, act.EndTime,
		)
	}

	br := q.SendBatch(ctx, batch)
	for i := range activities {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert activity %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert daily activities: %w", err)
	}

	return nil
}

func NewDailyRecordRepository(db *database.DB) timesheet.DayRecordRepository {
	return &dailyRecordRepositoryImpl{db: db}
}
