package memory

import (
	"context"
	"testing"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *Storage {
	t.Helper()
	s := New()
	s.AddUser(&model.User{ID: "u1", Email: "ann@example.com", PushToken: "tok"})

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddEvent(&model.Event{
		ID:     "e1",
		UserID: "u1",
		Title:  "Standup",
		Start:  start,
		End:    start.Add(15 * time.Minute),
	}, nil))
	require.NoError(t, s.AddEvent(&model.Event{
		ID:          "e2",
		UserID:      "u1",
		Title:       "Rent",
		Start:       time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 31, 11, 0, 0, 0, time.UTC),
		IsRecurring: true,
	}, &model.RecurrenceRule{Frequency: model.FrequencyMonthly, Interval: 1}))
	require.NoError(t, s.AddReminder(&model.Reminder{ID: "r1", EventID: "e1", MinutesBefore: 15}))

	return s
}

func TestAddEventRejectsInvalidRule(t *testing.T) {
	s := New()
	err := s.AddEvent(&model.Event{ID: "x", IsRecurring: true}, &model.RecurrenceRule{Frequency: model.FrequencyDaily})
	require.ErrorIs(t, err, model.ErrInvalidRule)

	err = s.AddEvent(&model.Event{ID: "y", IsRecurring: true}, nil)
	require.ErrorIs(t, err, model.ErrInvalidRule)
}

func TestGetEvents(t *testing.T) {
	ctx := context.Background()
	s := seed(t)

	events, err := s.GetEvents(ctx, nil, model.OccurrencesFilter{
		UserID: "u1",
		From:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "e2", events[0].ID)

	rules, err := s.GetRecurrenceRules(ctx, nil, []string{"e1", "e2"})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, "e2", rules["e2"].EventID)

	_, err = s.GetRecurrenceRule(ctx, nil, "e1")
	require.ErrorIs(t, err, model.ErrNoRecord)
}

func TestGetRemindersDue(t *testing.T) {
	ctx := context.Background()
	s := seed(t)

	due, err := s.GetRemindersDue(ctx, nil, time.Date(2025, 3, 10, 8, 44, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, due)

	due, err = s.GetRemindersDue(ctx, nil, time.Date(2025, 3, 10, 8, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "r1", due[0].Reminder.ID)
	require.Equal(t, "ann@example.com", due[0].Recipient.Email)
	require.Equal(t, "Standup", due[0].Event.Title)
}

func TestMarkReminderSentIsConditional(t *testing.T) {
	ctx := context.Background()
	s := seed(t)

	require.NoError(t, s.MarkReminderSent(ctx, nil, "r1"))
	require.ErrorIs(t, s.MarkReminderSent(ctx, nil, "r1"), model.ErrNoRecord)
	require.ErrorIs(t, s.MarkReminderSent(ctx, nil, "missing"), model.ErrNoRecord)

	r, ok := s.GetReminder("r1")
	require.True(t, ok)
	require.True(t, r.NotificationSent)

	due, err := s.GetRemindersDue(ctx, nil, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, due)
}
