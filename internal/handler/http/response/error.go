package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs)
		return
	}

	var outOfRange *timesheet.OutOfRangeError
	if errors.As(err, &outOfRange) {
		ConflictWithDetails(w, timesheet.CodeActivitiesOutOfRange, outOfRange.Error(), outOfRangeDetails(outOfRange))
		return
	}

	// Timesheet domain errors
	switch {
	case errors.Is(err, timesheet.ErrRecordLocked):
		Conflict(w, "Daily record has been approved and can no longer be modified")
	case errors.Is(err, timesheet.ErrActivityNotFound):
		NotFound(w, "Activity not found")
	case errors.Is(err, timesheet.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrUserIDRequired):
		Unauthorized(w, "User ID claim is missing")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func outOfRangeDetails(e *timesheet.OutOfRangeError) map[string]string {
	details := map[string]string{
		"range": e.Range,
		"count": strconv.Itoa(e.Count()),
	}
	for _, s := range e.Samples() {
		details[fmt.Sprintf("activity_%d", s.Index)] = fmt.Sprintf("%s %s-%s", s.JobID, s.Start, s.End)
	}
	return details
}
