package events

import (
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/teambition/rrule-go"
)

// RRule renders the rule as an RFC 5545 RRULE value. Plain FREQ=MONTHLY
// skips months that lack the start's day; the BYMONTHDAY/BYSETPOS pair
// expresses the clamp to the month's last day instead.
func RRule(start time.Time, r *model.RecurrenceRule) (string, error) {
	var freq rrule.Frequency
	switch r.Frequency {
	case model.FrequencyDaily:
		freq = rrule.DAILY
	case model.FrequencyWeekly:
		freq = rrule.WEEKLY
	case model.FrequencyMonthly:
		freq = rrule.MONTHLY
	case model.FrequencyYearly:
		freq = rrule.YEARLY
	default:
		return "", fmt.Errorf("unknown frequency %q: %w", r.Frequency, model.ErrInvalidRule)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: r.Interval,
		Dtstart:  start,
	}

	switch {
	case r.Frequency == model.FrequencyMonthly && start.Day() > 28:
		for d := 28; d <= start.Day(); d++ {
			opt.Bymonthday = append(opt.Bymonthday, d)
		}
		opt.Bysetpos = []int{-1}
	case r.Frequency == model.FrequencyYearly && start.Month() == time.February && start.Day() == 29:
		opt.Bymonth = []int{int(time.February)}
		opt.Bymonthday = []int{28, 29}
		opt.Bysetpos = []int{-1}
	}

	if r.Until != nil {
		opt.Until = *r.Until
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("creating rule: %w", err)
	}

	return rule.OrigOptions.RRuleString(), nil
}
