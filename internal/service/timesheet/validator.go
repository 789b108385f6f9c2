package timesheet

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
)

// NewActivity is the editingIndex of an activity that is not in the list yet.
const NewActivity = -1

// ActivityValidation is the outcome of checking a proposed activity. Start and
// End are set for overtime whenever both times parsed.
type ActivityValidation struct {
	Errors        validator.ValidationErrors
	ComputedHours *float64
	Start         *worktime.TimeOfDay
	End           *worktime.TimeOfDay
}

func (v ActivityValidation) Valid() bool {
	return len(v.Errors) == 0
}

// ValidateActivity checks a proposed activity against the day. Every rule
// runs and every failure is reported; the activity at editingIndex is left
// out of quota, eligibility and overlap checks.
func ValidateActivity(state DayState, req timesheet.ActivityRequest, editingIndex int) ActivityValidation {
	var result ActivityValidation
	errs := &result.Errors

	if validator.IsEmpty(req.Description) {
		errs.Add(timesheet.FieldDescription, timesheet.CodeRequiredFieldMissing, "La descripción es obligatoria")
	}
	if validator.IsEmpty(req.JobID) {
		errs.Add(timesheet.FieldJobID, timesheet.CodeRequiredFieldMissing, "El job es obligatorio")
	}

	// Without a config the record cannot be created, whatever the activity.
	if state.Config == nil {
		errs.Add(timesheet.FieldEntryTime, timesheet.CodeMissingConfig, "Configura la hora de entrada y salida antes de registrar actividades")
	}

	if req.IsOvertime && !state.Progress(editingIndex).OvertimeEligible {
		errs.Add(timesheet.FieldIsOvertime, timesheet.CodeOvertimeNotEligible,
			"Solo puedes ingresar horas extra cuando hayas completado el 100% de las horas normales del día")
	}

	if req.IsOvertime {
		validateOvertime(state, req, editingIndex, &result)
	} else {
		validateNormalDuration(state, req, editingIndex, errs)
	}

	// Added last so it is the message shown for duration_hours.
	if !req.IsOvertime && state.QuotaHours == 0 {
		errs.Add(timesheet.FieldDurationHours, timesheet.CodeDayHasNoNormalHours, "Este día no tiene horas normales; usa Hora Extra")
	}

	return result
}

func validateNormalDuration(state DayState, req timesheet.ActivityRequest, editingIndex int, errs *validator.ValidationErrors) {
	if req.DurationHours == nil {
		errs.Add(timesheet.FieldDurationHours, timesheet.CodeInvalidDuration, "Las horas invertidas son obligatorias para actividades normales")
		return
	}
	hours := *req.DurationHours
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		errs.Add(timesheet.FieldDurationHours, timesheet.CodeInvalidDuration, "Ingresa un número válido mayor a 0")
		return
	}

	remaining := worktime.RemainingHours(state.QuotaHours, state.NormalHours(editingIndex))
	if worktime.RoundHours(hours) > remaining {
		errs.Add(timesheet.FieldDurationHours, timesheet.CodeExceedsRemainingQuota,
			fmt.Sprintf("Las horas exceden el límite disponible. Solo quedan %.2f horas para completar el día", remaining))
	}
}

func validateOvertime(state DayState, req timesheet.ActivityRequest, editingIndex int, result *ActivityValidation) {
	errs := &result.Errors

	start, startOK := parseActivityTime(errs, timesheet.FieldStartTime, req.StartTime, "Hora inicio obligatoria para hora extra")
	end, endOK := parseActivityTime(errs, timesheet.FieldEndTime, req.EndTime, "Hora fin obligatoria para hora extra")
	if !startOK || !endOK {
		return
	}
	result.Start, result.End = &start, &end

	hours := worktime.ComputeFromInterval(start, end, state.Span, state.Workday.LunchDeduction())
	result.ComputedHours = &hours
	if hours <= 0 {
		errs.Add(timesheet.FieldDurationHours, timesheet.CodeInvalidComputedDuration, "Las horas calculadas no son válidas")
	}

	if state.HasSpan {
		if msg, ok := placementError(state.Span, start, end); !ok {
			errs.Add(timesheet.FieldStartTime, timesheet.CodeOvertimeWithinWorkday, msg)
			errs.Add(timesheet.FieldEndTime, timesheet.CodeOvertimeWithinWorkday, msg)
		}
	}

	if inverted(state.Span, start, end) {
		errs.Add(timesheet.FieldEndTime, timesheet.CodeInvertedInterval, "La hora final debe ser posterior a la inicial")
	}

	if overlapsOther(state, start, end, editingIndex) {
		errs.Add(timesheet.FieldStartTime, timesheet.CodeOverlappingActivity, "Este horario se solapa con otra actividad")
		errs.Add(timesheet.FieldEndTime, timesheet.CodeOverlappingActivity, "Este horario se solapa con otra actividad")
	}
}

func parseActivityTime(errs *validator.ValidationErrors, field, value, missingMsg string) (worktime.TimeOfDay, bool) {
	if validator.IsEmpty(value) {
		errs.Add(field, timesheet.CodeMissingTimeFields, missingMsg)
		return 0, false
	}
	t, err := worktime.ParseQuarterHour(value)
	if err != nil {
		errs.Add(field, timesheet.CodeInvalidFormat, "La hora debe tener el formato HH:MM")
		return 0, false
	}
	return t, true
}

// placementError checks that overtime lies entirely outside the workday. On an
// overnight span the only free window is between exit and the next entry.
func placementError(span worktime.DaySpan, start, end worktime.TimeOfDay) (string, bool) {
	s, e := int(start), int(end)
	if e <= s {
		e += worktime.MinutesPerDay
	}

	if span.CrossesMidnight {
		if s >= int(span.Exit()) && e <= span.Start {
			return "", true
		}
		return fmt.Sprintf("La hora extra debe estar entre %s y %s", span.Exit(), span.Entry()), false
	}

	if e <= span.Start || s >= span.End {
		return "", true
	}
	return fmt.Sprintf("La hora extra debe estar antes de %s o después de %s", span.Entry(), span.Exit()), false
}

// inverted reports an interval whose end does not follow its start. Only an
// overnight workday lets an activity wrap past midnight.
func inverted(span worktime.DaySpan, start, end worktime.TimeOfDay) bool {
	if start == end {
		return true
	}
	return !span.CrossesMidnight && end < start
}

func overlapsOther(state DayState, start, end worktime.TimeOfDay, editingIndex int) bool {
	a1, a2 := state.Span.Interval(start, end)
	for i, act := range state.Activities {
		if i == editingIndex {
			continue
		}
		otherStart, otherEnd, ok := act.Clocks(state.Location())
		if !ok {
			continue
		}
		b1, b2 := state.Span.Interval(otherStart, otherEnd)
		if worktime.OverlapMinutes(a1, a2, b1, b2) > 0 {
			return true
		}
	}
	return false
}
