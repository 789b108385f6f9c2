package worktime

import "fmt"

// Progress is the normal-hours completion of a day.
type Progress struct {
	NormalHoursWorked float64
	QuotaHours        float64
	// Percent is not clamped; it exceeds 100 when the day is over-logged.
	Percent          float64
	RemainingHours   float64
	Complete         bool
	OvertimeEligible bool
	Message          string
}

// CalculateProgress compares the normal hours worked against the quota.
func CalculateProgress(normalHoursWorked, quotaHours float64) Progress {
	worked := RoundHours(normalHoursWorked)
	quota := RoundHours(quotaHours)

	p := Progress{
		NormalHoursWorked: worked,
		QuotaHours:        quota,
		RemainingHours:    RemainingHours(quota, worked),
	}
	if quota == 0 {
		p.Percent = 100
	} else {
		p.Percent = max(0, worked/quota*100)
	}
	p.Complete = worked >= quota
	p.OvertimeEligible = quota == 0 || p.Percent >= 100

	if p.Complete {
		p.Message = "Has completado las horas normales del día"
	} else {
		p.Message = fmt.Sprintf("Faltan %.2f horas para completar el día", p.RemainingHours)
	}
	return p
}

// DisplayPercent clamps Percent to [0, 100] for rendering.
func (p Progress) DisplayPercent() float64 {
	return min(100, max(0, p.Percent))
}

// RemainingHours is max(0, quota - worked), rounded to two decimals.
func RemainingHours(quota, worked float64) float64 {
	return RoundHours(max(0, quota-worked))
}

// SumHours adds hours and rounds the total.
func SumHours(hours ...float64) float64 {
	var total float64
	for _, h := range hours {
		total += h
	}
	return RoundHours(total)
}
