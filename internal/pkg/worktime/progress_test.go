package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProgress(t *testing.T) {
	p := CalculateProgress(6, 8)
	assert.Equal(t, 75.0, p.Percent)
	assert.Equal(t, 2.0, p.RemainingHours)
	assert.False(t, p.Complete)
	assert.False(t, p.OvertimeEligible)
	assert.Equal(t, "Faltan 2.00 horas para completar el día", p.Message)
}

func TestCalculateProgress_Complete(t *testing.T) {
	p := CalculateProgress(8, 8)
	assert.Equal(t, 100.0, p.Percent)
	assert.True(t, p.Complete)
	assert.True(t, p.OvertimeEligible)
	assert.Equal(t, 0.0, p.RemainingHours)
	assert.Equal(t, "Has completado las horas normales del día", p.Message)
}

func TestCalculateProgress_OverLogged(t *testing.T) {
	p := CalculateProgress(10, 8)
	assert.Equal(t, 125.0, p.Percent)
	assert.Equal(t, 100.0, p.DisplayPercent())
	assert.True(t, p.OvertimeEligible)
}

func TestCalculateProgress_ZeroQuota(t *testing.T) {
	p := CalculateProgress(0, 0)
	assert.Equal(t, 100.0, p.Percent)
	assert.True(t, p.OvertimeEligible)
	assert.True(t, p.Complete)
}

func TestCalculateProgress_FloatSums(t *testing.T) {
	// 0.1 + 0.2 + 7.7 is not exactly 8 in floating point.
	p := CalculateProgress(SumHours(0.1, 0.2, 7.7), 8)
	assert.True(t, p.OvertimeEligible)
}
