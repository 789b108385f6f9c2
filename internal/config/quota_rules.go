package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/worktime"
	"gopkg.in/yaml.v3"
)

// quotaRulesFile is the YAML layout of TIMESHEET_QUOTA_RULES_FILE:
//
//	lunch_minutes: 60
//	rules:
//	  - schedule_type: H2
//	    shift: N
//	    weekday: tuesday
//	    hours: 6
type quotaRulesFile struct {
	LunchMinutes *int `yaml:"lunch_minutes"`
	Rules        []struct {
		ScheduleType string  `yaml:"schedule_type"`
		Shift        string  `yaml:"shift"`
		Weekday      string  `yaml:"weekday"`
		Hours        float64 `yaml:"hours"`
	} `yaml:"rules"`
}

// LoadQuotaPolicy reads quota overrides from a YAML file. An empty path yields
// the default policy.
func LoadQuotaPolicy(path string) (worktime.QuotaPolicy, error) {
	if path == "" {
		return worktime.DefaultQuotaPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return worktime.QuotaPolicy{}, fmt.Errorf("read quota rules: %w", err)
	}
	return ParseQuotaPolicy(data)
}

// ParseQuotaPolicy decodes the YAML quota rules document.
func ParseQuotaPolicy(data []byte) (worktime.QuotaPolicy, error) {
	var file quotaRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return worktime.QuotaPolicy{}, fmt.Errorf("parse quota rules: %w", err)
	}

	policy := worktime.QuotaPolicy{LunchMinutes: worktime.DefaultQuotaPolicy().LunchMinutes}
	if file.LunchMinutes != nil {
		if *file.LunchMinutes < 0 {
			return worktime.QuotaPolicy{}, fmt.Errorf("lunch_minutes must not be negative")
		}
		policy.LunchMinutes = *file.LunchMinutes
	}

	for i, r := range file.Rules {
		shift := worktime.Shift(strings.ToUpper(strings.TrimSpace(r.Shift)))
		if !shift.Valid() {
			return worktime.QuotaPolicy{}, fmt.Errorf("rule %d: shift must be 'D' or 'N'", i+1)
		}
		weekday, err := parseWeekday(r.Weekday)
		if err != nil {
			return worktime.QuotaPolicy{}, fmt.Errorf("rule %d: %w", i+1, err)
		}
		if r.ScheduleType == "" {
			return worktime.QuotaPolicy{}, fmt.Errorf("rule %d: schedule_type is required", i+1)
		}
		if r.Hours < 0 {
			return worktime.QuotaPolicy{}, fmt.Errorf("rule %d: hours must not be negative", i+1)
		}
		policy.Rules = append(policy.Rules, worktime.QuotaRule{
			ScheduleType: r.ScheduleType,
			Shift:        shift,
			Weekday:      weekday,
			Hours:        r.Hours,
		})
	}

	return policy, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
