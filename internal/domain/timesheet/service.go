package timesheet

import (
	"context"
)

// TimesheetService defines the daily timesheet operations of the current user
type TimesheetService interface {
	// GetDay returns the day view; an empty date means today
	GetDay(ctx context.Context, date string) (DayResponse, error)

	// SaveDayConfig updates the day configuration, keeping the activity list
	SaveDayConfig(ctx context.Context, date string, req DayConfigRequest) (DayResponse, error)

	// CreateActivity appends an activity, creating the record if needed
	CreateActivity(ctx context.Context, date string, req ActivityRequest) (DayResponse, error)

	// UpdateActivity replaces the activity at index
	UpdateActivity(ctx context.Context, date string, index int, req ActivityRequest) (DayResponse, error)

	// DeleteActivity removes the activity at index
	DeleteActivity(ctx context.Context, date string, index int) (DayResponse, error)

	// ValidateActivity runs activity validation without saving; index is -1 for a new activity
	ValidateActivity(ctx context.Context, date string, index int, req ActivityRequest) (ValidateActivityResponse, error)

	// ListJobs returns the jobs activities can be logged against
	ListJobs(ctx context.Context) ([]JobResponse, error)
}
