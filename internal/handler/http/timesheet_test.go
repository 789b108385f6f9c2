package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// stubTimesheetService records the last call and returns err when set
type stubTimesheetService struct {
	err       error
	lastDate  string
	lastIndex int
	lastUser  string
}

func (s *stubTimesheetService) record(ctx context.Context, date string, index int) {
	s.lastDate, s.lastIndex = date, index
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		s.lastUser, _ = claims["user_id"].(string)
	}
}

func (s *stubTimesheetService) day(date string) timesheet.DayResponse {
	return timesheet.DayResponse{Date: date, QuotaHours: 9, QuotaSource: "config"}
}

func (s *stubTimesheetService) GetDay(ctx context.Context, date string) (timesheet.DayResponse, error) {
	s.record(ctx, date, 0)
	return s.day(date), s.err
}

func (s *stubTimesheetService) SaveDayConfig(ctx context.Context, date string, req timesheet.DayConfigRequest) (timesheet.DayResponse, error) {
	s.record(ctx, date, 0)
	return s.day(date), s.err
}

func (s *stubTimesheetService) CreateActivity(ctx context.Context, date string, req timesheet.ActivityRequest) (timesheet.DayResponse, error) {
	s.record(ctx, date, -1)
	return s.day(date), s.err
}

func (s *stubTimesheetService) UpdateActivity(ctx context.Context, date string, index int, req timesheet.ActivityRequest) (timesheet.DayResponse, error) {
	s.record(ctx, date, index)
	return s.day(date), s.err
}

func (s *stubTimesheetService) DeleteActivity(ctx context.Context, date string, index int) (timesheet.DayResponse, error) {
	s.record(ctx, date, index)
	return s.day(date), s.err
}

func (s *stubTimesheetService) ValidateActivity(ctx context.Context, date string, index int, req timesheet.ActivityRequest) (timesheet.ValidateActivityResponse, error) {
	s.record(ctx, date, index)
	return timesheet.ValidateActivityResponse{Valid: true}, s.err
}

func (s *stubTimesheetService) ListJobs(ctx context.Context) ([]timesheet.JobResponse, error) {
	s.record(ctx, "", 0)
	return []timesheet.JobResponse{{ID: "job-1", Code: "J-100", Name: "Producción"}}, s.err
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
		Issues  []struct {
			Field   string `json:"field"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"issues"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (http.Handler, *stubTimesheetService, string) {
	t.Helper()
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour, 0)
	svc := &stubTimesheetService{}
	router := NewRouter(RouterOptions{Env: "test", Version: "test"}, jwtSvc, NewTimesheetHandler(svc))

	token, _, err := jwtSvc.GenerateAccessToken("user-1", "ana@example.com")
	require.NoError(t, err)
	return router, svc, token
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestTimesheetHandler_RequiresToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/timesheet/today", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestTimesheetHandler_RejectsNonAccessToken(t *testing.T) {
	router, _, _ := newTestRouter(t)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour, 0)
	_, refresh, err := jwtSvc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "user-1",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/timesheet/today", refresh, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTimesheetHandler_GetDay(t *testing.T) {
	router, svc, token := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/timesheet/days/2024-03-04", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "2024-03-04", svc.lastDate)
	assert.Equal(t, "user-1", svc.lastUser)

	var day timesheet.DayResponse
	require.NoError(t, json.Unmarshal(env.Data, &day))
	assert.Equal(t, 9.0, day.QuotaHours)
}

func TestTimesheetHandler_GetToday(t *testing.T) {
	router, svc, token := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/timesheet/today", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", svc.lastDate)
}

func TestTimesheetHandler_SaveDayConfig_InvalidBody(t *testing.T) {
	router, _, token := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPut, "/api/v1/timesheet/days/2024-03-04/config", token, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestTimesheetHandler_ValidationError(t *testing.T) {
	router, svc, token := newTestRouter(t)
	var errs validator.ValidationErrors
	errs.Add(timesheet.FieldDurationHours, timesheet.CodeExceedsRemainingQuota,
		"Las horas exceden el límite disponible. Solo quedan 2.00 horas para completar el día")
	svc.err = errs

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/timesheet/days/2024-03-04/activities", token,
		timesheet.ActivityRequest{Description: "x", JobID: "job-1"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details[timesheet.FieldDurationHours], "2.00 horas")
	require.Len(t, env.Error.Issues, 1)
	assert.Equal(t, timesheet.CodeExceedsRemainingQuota, env.Error.Issues[0].Code)
}

func TestTimesheetHandler_ValidationError_KeepsEveryCode(t *testing.T) {
	router, svc, token := newTestRouter(t)
	var errs validator.ValidationErrors
	errs.Add(timesheet.FieldDurationHours, timesheet.CodeExceedsRemainingQuota,
		"Las horas exceden el límite disponible. Solo quedan 0.00 horas para completar el día")
	errs.Add(timesheet.FieldDurationHours, timesheet.CodeDayHasNoNormalHours, "Este día no tiene horas normales; usa Hora Extra")
	svc.err = errs

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/timesheet/days/2024-03-04/activities", token,
		timesheet.ActivityRequest{Description: "x", JobID: "job-1"})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	require.Len(t, env.Error.Issues, 2)
	assert.Equal(t, timesheet.FieldDurationHours, env.Error.Issues[0].Field)
	assert.Equal(t, timesheet.CodeExceedsRemainingQuota, env.Error.Issues[0].Code)
	assert.Equal(t, timesheet.CodeDayHasNoNormalHours, env.Error.Issues[1].Code)
	assert.Equal(t, "Este día no tiene horas normales; usa Hora Extra", env.Error.Details[timesheet.FieldDurationHours])
}

func TestTimesheetHandler_OutOfRange(t *testing.T) {
	router, svc, token := newTestRouter(t)
	svc.err = &timesheet.OutOfRangeError{
		Range:      "08:00 - 16:00",
		Activities: []timesheet.StrandedActivity{{Index: 0, JobID: "J-100", Start: "07:00", End: "07:30"}},
	}

	rec, env := doRequest(t, router, http.MethodPut, "/api/v1/timesheet/days/2024-03-04/config", token,
		timesheet.DayConfigRequest{EntryTime: "08:00", ExitTime: "16:00"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, timesheet.CodeActivitiesOutOfRange, env.Error.Code)
	assert.Equal(t, "1", env.Error.Details["count"])
	assert.Equal(t, "J-100 07:00-07:30", env.Error.Details["activity_0"])
}

func TestTimesheetHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"locked", timesheet.ErrRecordLocked, http.StatusConflict},
		{"not found", timesheet.ErrActivityNotFound, http.StatusNotFound},
		{"invalid date", timesheet.ErrInvalidDate, http.StatusBadRequest},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, svc, token := newTestRouter(t)
			svc.err = tc.err

			rec, _ := doRequest(t, router, http.MethodDelete, "/api/v1/timesheet/days/2024-03-04/activities/2", token, nil)

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, 2, svc.lastIndex)
		})
	}
}

func TestTimesheetHandler_InvalidIndex(t *testing.T) {
	router, _, token := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPut, "/api/v1/timesheet/days/2024-03-04/activities/abc", token,
		timesheet.ActivityRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "index")
}

func TestTimesheetHandler_CreateActivity(t *testing.T) {
	router, _, token := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/timesheet/days/2024-03-04/activities", token,
		timesheet.ActivityRequest{Description: "Inventario", JobID: "job-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
}

func TestTimesheetHandler_ValidateRoutes(t *testing.T) {
	router, svc, token := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/timesheet/days/2024-03-04/activities/validate", token,
		timesheet.ActivityRequest{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, svc.lastIndex)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/timesheet/days/2024-03-04/activities/1/validate", token,
		timesheet.ActivityRequest{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.lastIndex)

	var result timesheet.ValidateActivityResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Valid)
}

func TestTimesheetHandler_ListJobs(t *testing.T) {
	router, _, token := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/jobs", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []timesheet.JobResponse
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "J-100", jobs[0].Code)
}

func TestRouter_Heartbeat(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
