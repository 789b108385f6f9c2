package timesheet

import (
	"context"
)

// DayRecordRepository persists daily records. Records are keyed by user and a
// YYYY-MM-DD date in the fixed timesheet zone.
type DayRecordRepository interface {
	// GetByDate returns nil when the user has no record for the date
	GetByDate(ctx context.Context, userID string, date string) (*DayRecord, error)

	// Upsert writes the config and replaces the whole activity list
	Upsert(ctx context.Context, record DayRecord) (DayRecord, error)
}

// ScheduleLookup resolves the scheduled workday of a user.
type ScheduleLookup interface {
	// GetWorkSchedule returns nil when no schedule applies to the date
	GetWorkSchedule(ctx context.Context, userID string, date string) (*WorkSchedule, error)
}

type JobRepository interface {
	ListActive(ctx context.Context) ([]Job, error)
}
