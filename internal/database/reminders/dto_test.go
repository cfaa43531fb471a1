package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/stretchr/testify/require"
)

func validRow() *dueReminderDTO {
	token := "push-1"
	return &dueReminderDTO{
		ReminderID:    "r1",
		EventID:       "e1",
		MinutesBefore: 15,
		Title:         "Standup",
		StartDate:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC),
		Timezone:      "UTC",
		UserID:        "u1",
		Email:         "ann@example.com",
		PushToken:     &token,
	}
}

// rowsQueryable serves a fixed result set to Select.
type rowsQueryable struct {
	rows []*dueReminderDTO
	err  error
}

func (q *rowsQueryable) Exec(_ context.Context, _ database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, errors.New("not supported")
}

func (q *rowsQueryable) Get(_ context.Context, _ interface{}, _ database.Sqlizer) error {
	return errors.New("not supported")
}

func (q *rowsQueryable) Select(_ context.Context, dst interface{}, _ database.Sqlizer) error {
	if q.err != nil {
		return q.err
	}
	*dst.(*[]*dueReminderDTO) = q.rows
	return nil
}

func TestMapToDueReminder(t *testing.T) {
	due := mapToDueReminder(validRow())
	require.NoError(t, due.Invalid)
	require.Equal(t, "r1", due.Reminder.ID)
	require.Equal(t, "e1", due.Event.ID)
	require.Equal(t, "push-1", due.Recipient.PushToken)
	require.Empty(t, due.Event.Description)
	require.Equal(t, time.Date(2025, 3, 10, 8, 45, 0, 0, time.UTC), due.TriggerAt())
}

func TestMapToDueReminderUnknownTimezone(t *testing.T) {
	row := validRow()
	row.Timezone = "Europe/Pariss"

	due := mapToDueReminder(row)
	require.Error(t, due.Invalid)
	require.Equal(t, "r1", due.Reminder.ID)
	require.True(t, due.Event.Start.Equal(row.StartDate))
}

func TestGetRemindersDueKeepsValidRowsNextToBadOnes(t *testing.T) {
	bad := validRow()
	bad.ReminderID = "r2"
	bad.EventID = "e2"
	bad.Timezone = "Europe/Pariss"

	q := &rowsQueryable{rows: []*dueReminderDTO{validRow(), bad}}
	got, err := NewRepository().GetRemindersDue(context.Background(), q, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NoError(t, got[0].Invalid)
	require.Equal(t, "r1", got[0].Reminder.ID)
	require.Error(t, got[1].Invalid)
	require.Equal(t, "r2", got[1].Reminder.ID)
}

func TestGetRemindersDueStoreError(t *testing.T) {
	q := &rowsQueryable{err: errors.New("connection refused")}
	_, err := NewRepository().GetRemindersDue(context.Background(), q, time.Now())
	require.Error(t, err)
}
