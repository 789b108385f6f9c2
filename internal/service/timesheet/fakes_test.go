package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"
)

// Honduras has no daylight saving time, a fixed zone behaves the same.
var testLoc = time.FixedZone("CST", -6*60*60)

const testUserID = "0190f5b2-7a3c-7c1e-9d2b-5e6f7a8b9c0d"

type fakeRecordRepo struct {
	records map[string]timesheet.DayRecord
	upserts int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]timesheet.DayRecord)}
}

func (f *fakeRecordRepo) key(userID, date string) string {
	return userID + "/" + date
}

func (f *fakeRecordRepo) GetByDate(ctx context.Context, userID, date string) (*timesheet.DayRecord, error) {
	r, ok := f.records[f.key(userID, date)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRecordRepo) Upsert(ctx context.Context, record timesheet.DayRecord) (timesheet.DayRecord, error) {
	f.upserts++
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	f.records[f.key(record.UserID, record.Date.Format(time.DateOnly))] = record
	return record, nil
}

func (f *fakeRecordRepo) put(date string, record timesheet.DayRecord) {
	record.UserID = testUserID
	record.Date = mustDate(date)
	f.records[f.key(testUserID, date)] = record
}

type fakeScheduleLookup struct {
	schedule *timesheet.WorkSchedule
	err      error
}

func (f *fakeScheduleLookup) GetWorkSchedule(ctx context.Context, userID, date string) (*timesheet.WorkSchedule, error) {
	return f.schedule, f.err
}

type fakeJobRepo struct {
	jobs []timesheet.Job
}

func (f *fakeJobRepo) ListActive(ctx context.Context) ([]timesheet.Job, error) {
	return f.jobs, nil
}

var errLookupDown = errors.New("schedule lookup unavailable")

func mustDate(key string) time.Time {
	d, err := worktime.ParseDateKey(key, testLoc)
	if err != nil {
		panic(err)
	}
	return d
}

func userContext(t *testing.T) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("user_id", testUserID))
	require.NoError(t, token.Set("type", "access"))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func ptr[T any](v T) *T {
	return &v
}

// dayConfig builds a stored config for date from HH:MM strings.
func dayConfig(date, entry, exit string) timesheet.DayConfig {
	return newDayConfig(mustDate(date), worktime.MustParseTime(entry), worktime.MustParseTime(exit))
}

func normalActivity(hours float64) timesheet.Activity {
	return timesheet.Activity{
		ID:            uuid.NewString(),
		JobID:         "job-1",
		Description:   "Mantenimiento",
		DurationHours: hours,
	}
}

func overtimeActivity(date, start, end string) timesheet.Activity {
	d := mustDate(date)
	s, e := worktime.MustParseTime(start), worktime.MustParseTime(end)
	endDays := 0
	if e <= s {
		endDays = 1
	}
	startAt, endAt := worktime.At(d, s, 0), worktime.At(d, e, endDays)
	return timesheet.Activity{
		ID:            uuid.NewString(),
		JobID:         "job-2",
		Description:   "Soporte",
		IsOvertime:    true,
		DurationHours: worktime.ComputeFromInterval(s, e, worktime.DaySpan{}, false),
		StartTime:     &startAt,
		EndTime:       &endAt,
	}
}
