package reminders

import (
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

type dueReminderDTO struct {
	ReminderID       string    `db:"reminder_id"`
	EventID          string    `db:"event_id"`
	MinutesBefore    int       `db:"minutes_before"`
	NotificationSent bool      `db:"notification_sent"`
	Title            string    `db:"title"`
	Description      *string   `db:"description"`
	StartDate        time.Time `db:"start_date"`
	EndDate          time.Time `db:"end_date"`
	Timezone         string    `db:"timezone"`
	IsAllDay         bool      `db:"is_all_day"`
	IsRecurring      bool      `db:"is_recurring"`
	UserID           string    `db:"user_id"`
	Email            string    `db:"email"`
	PushToken        *string   `db:"push_token"`
}

// mapToDueReminder never fails: a row with an unknown timezone keeps its
// instants in UTC and carries the problem in Invalid.
func mapToDueReminder(dto *dueReminderDTO) *model.DueReminder {
	loc := time.UTC
	var invalid error
	if dto.Timezone != "" {
		l, err := time.LoadLocation(dto.Timezone)
		if err != nil {
			invalid = fmt.Errorf("event %v timezone %q: %w", dto.EventID, dto.Timezone, err)
		} else {
			loc = l
		}
	}

	var description, pushToken string
	if dto.Description != nil {
		description = *dto.Description
	}
	if dto.PushToken != nil {
		pushToken = *dto.PushToken
	}

	return &model.DueReminder{
		Reminder: model.Reminder{
			ID:               dto.ReminderID,
			EventID:          dto.EventID,
			MinutesBefore:    dto.MinutesBefore,
			NotificationSent: dto.NotificationSent,
		},
		Event: model.Event{
			ID:          dto.EventID,
			UserID:      dto.UserID,
			Title:       dto.Title,
			Description: description,
			Start:       dto.StartDate.In(loc),
			End:         dto.EndDate.In(loc),
			IsAllDay:    dto.IsAllDay,
			IsRecurring: dto.IsRecurring,
		},
		Recipient: model.Recipient{
			UserID:    dto.UserID,
			Email:     dto.Email,
			PushToken: pushToken,
		},
		Invalid: invalid,
	}
}
