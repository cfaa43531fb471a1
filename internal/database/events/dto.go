package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/gerow/go-color"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

type eventDTO struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Timezone    string    `db:"timezone"`
	IsAllDay    bool      `db:"is_all_day"`
	Color       string    `db:"color"`
	IsRecurring bool      `db:"is_recurring"`
}

type ruleDTO struct {
	EventID   string     `db:"event_id"`
	Frequency string     `db:"frequency"`
	Interval  *int       `db:"interval"`
	EndDate   *time.Time `db:"end_date"`
}

func mapToEvent(dto *eventDTO) (*model.Event, error) {
	loc := time.UTC
	if dto.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(dto.Timezone)
		if err != nil {
			return nil, fmt.Errorf("event %v timezone %q: %w", dto.ID, dto.Timezone, err)
		}
	}

	description := ""
	if dto.Description != nil {
		description = *dto.Description
	}

	return &model.Event{
		ID:          dto.ID,
		UserID:      dto.UserID,
		Title:       dto.Title,
		Description: description,
		Start:       dto.StartDate.In(loc),
		End:         dto.EndDate.In(loc),
		IsAllDay:    dto.IsAllDay,
		Color:       normalizeColor(dto.Color),
		IsRecurring: dto.IsRecurring,
	}, nil
}

// normalizeColor returns the colour tag in lower-case #rrggbb form, falling
// back to the default palette colour for tags that are not HTML colours.
func normalizeColor(tag string) string {
	hex := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), "#")
	if hex == "" {
		return model.DefaultEventColor
	}
	if _, err := color.HTMLToRGB(hex); err != nil {
		return model.DefaultEventColor
	}

	return "#" + hex
}

func mapToRule(dto *ruleDTO) (*model.RecurrenceRule, error) {
	frequency, err := model.ParseFrequency(dto.Frequency)
	if err != nil {
		return nil, fmt.Errorf("rule of event %v: %w", dto.EventID, err)
	}

	interval := 1
	if dto.Interval != nil {
		interval = *dto.Interval
	}

	rule := &model.RecurrenceRule{
		EventID:   dto.EventID,
		Frequency: frequency,
		Interval:  interval,
		Until:     dto.EndDate,
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("rule of event %v: %w", dto.EventID, err)
	}

	return rule, nil
}
