package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	// Day
	GetToday(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	SaveDayConfig(w http.ResponseWriter, r *http.Request)

	// Activities
	CreateActivity(w http.ResponseWriter, r *http.Request)
	UpdateActivity(w http.ResponseWriter, r *http.Request)
	DeleteActivity(w http.ResponseWriter, r *http.Request)
	ValidateNewActivity(w http.ResponseWriter, r *http.Request)
	ValidateActivity(w http.ResponseWriter, r *http.Request)

	// Jobs
	ListJobs(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// ==================== DAY HANDLERS ====================

func (h *timesheetHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetDay(r.Context(), "")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.timesheetService.GetDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) SaveDayConfig(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var req timesheet.DayConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.SaveDayConfig(r.Context(), date, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== ACTIVITY HANDLERS ====================

func (h *timesheetHandlerImpl) CreateActivity(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var req timesheet.ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.CreateActivity(r.Context(), date, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Activity created successfully", result)
}

func (h *timesheetHandlerImpl) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	index, ok := activityIndex(w, r)
	if !ok {
		return
	}

	var req timesheet.ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.UpdateActivity(r.Context(), date, index, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	index, ok := activityIndex(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.DeleteActivity(r.Context(), date, index)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) ValidateNewActivity(w http.ResponseWriter, r *http.Request) {
	h.validate(w, r, -1)
}

func (h *timesheetHandlerImpl) ValidateActivity(w http.ResponseWriter, r *http.Request) {
	index, ok := activityIndex(w, r)
	if !ok {
		return
	}
	h.validate(w, r, index)
}

func (h *timesheetHandlerImpl) validate(w http.ResponseWriter, r *http.Request, index int) {
	date := chi.URLParam(r, "date")

	var req timesheet.ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.ValidateActivity(r.Context(), date, index, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== JOB HANDLERS ====================

func (h *timesheetHandlerImpl) ListJobs(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.ListJobs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func activityIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		response.BadRequest(w, "Invalid activity index", map[string]string{"index": "must be a non-negative integer"})
		return 0, false
	}
	return index, true
}
