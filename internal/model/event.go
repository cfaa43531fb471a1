package model

import (
	"fmt"
	"time"
)

type Event struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	IsAllDay    bool
	Color       string
	IsRecurring bool
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	default:
		return "", fmt.Errorf("unknown frequency %q: %w", s, ErrInvalidRule)
	}
}

// RecurrenceRule belongs to exactly one recurring Event. Until is inclusive,
// nil means the series never ends.
type RecurrenceRule struct {
	EventID   string
	Frequency Frequency
	Interval  int
	Until     *time.Time
}

func (r *RecurrenceRule) Validate() error {
	if r == nil {
		return fmt.Errorf("rule is missing: %w", ErrInvalidRule)
	}
	if _, err := ParseFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if r.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d: %w", r.Interval, ErrInvalidRule)
	}

	return nil
}

// Occurrence is a materialized instance of an event. It is never persisted.
type Occurrence struct {
	EventID     string
	InstanceKey string
	Title       string
	Description string
	Color       string
	IsAllDay    bool
	IsRecurring bool
	Start       time.Time
	End         time.Time
	RRule       string
}

func InstanceKey(eventID string, start time.Time) string {
	return fmt.Sprintf("%v_%v", eventID, start.Unix())
}

type OccurrencesFilter struct {
	UserID string
	From   time.Time
	To     time.Time
}

const DefaultEventColor = "#3b82f6"
