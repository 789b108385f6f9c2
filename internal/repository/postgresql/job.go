package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type jobRepositoryImpl struct {
	db *database.DB
}

// ListActive implements timesheet.JobRepository.
func (j *jobRepositoryImpl) ListActive(ctx context.Context) ([]timesheet.Job, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT id, code, name, is_active
		FROM jobs
		WHERE is_active = TRUE
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []timesheet.Job{}
	for rows.Next() {
		var job timesheet.Job
		if err := rows.Scan(&job.ID, &job.Code, &job.Name, &job.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func NewJobRepository(db *database.DB) timesheet.JobRepository {
	return &jobRepositoryImpl{db: db}
}
