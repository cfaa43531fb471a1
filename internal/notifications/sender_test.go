package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/database/memory"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sent struct {
	to model.Recipient
	n  *model.Notification
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []sent
	failOn map[string]error
}

func (f *fakeNotifier) Send(_ context.Context, to model.Recipient, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[n.Title]; ok {
		return err
	}
	f.sent = append(f.sent, sent{to: to, n: n})
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type failingMarkStore struct {
	*memory.Storage
	err error
}

func (s *failingMarkStore) MarkReminderSent(_ context.Context, _ database.Queryable, _ string) error {
	return s.err
}

type unavailableStore struct {
	*memory.Storage
}

func (unavailableStore) GetRemindersDue(_ context.Context, _ database.Queryable, _ time.Time) ([]*model.DueReminder, error) {
	return nil, errors.New("connection refused")
}

// badZoneStore adds a row the store could not map to the pending reminders.
type badZoneStore struct {
	*memory.Storage
}

func (s badZoneStore) GetRemindersDue(ctx context.Context, q database.Queryable, now time.Time) ([]*model.DueReminder, error) {
	rows, err := s.Storage.GetRemindersDue(ctx, q, now)
	if err != nil {
		return nil, err
	}
	bad := &model.DueReminder{
		Reminder: model.Reminder{ID: "rem-bad", EventID: "event-bad", MinutesBefore: 15},
		Event:    model.Event{ID: "event-bad", UserID: "u1", Title: "Bad zone", Start: at(9, 0), End: at(10, 0)},
		Invalid:  errors.New(`event event-bad timezone "Europe/Pariss": unknown time zone Europe/Pariss`),
	}
	return append([]*model.DueReminder{bad}, rows...), nil
}

// blockingNotifier holds every send until its context ends.
type blockingNotifier struct{}

func (blockingNotifier) Send(ctx context.Context, _ model.Recipient, _ *model.Notification) error {
	<-ctx.Done()
	return ctx.Err()
}

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func newStore(t *testing.T, titles ...string) *memory.Storage {
	t.Helper()
	s := memory.New()
	s.AddUser(&model.User{ID: "u1", Email: "ann@example.com", PushToken: "token-1"})
	for i, title := range titles {
		id := string(rune('a' + i))
		require.NoError(t, s.AddEvent(&model.Event{
			ID:          "event-" + id,
			UserID:      "u1",
			Title:       title,
			Description: "Room 4",
			Start:       at(9, 0),
			End:         at(10, 0),
		}, nil))
		require.NoError(t, s.AddReminder(&model.Reminder{ID: "rem-" + id, EventID: "event-" + id, MinutesBefore: 15}))
	}
	return s
}

func newTestSender(reminders remindersRepository, n notifier) *Sender {
	s := NewSender(nil, zap.NewNop().Sugar(), reminders, n, &LocalLock{})
	s.location = time.UTC
	s.workers = 4
	s.passTimeout = time.Minute
	return s
}

func TestDispatchEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, "Standup")
	n := &fakeNotifier{}
	s := newTestSender(store, n)

	report, err := s.Dispatch(ctx, at(8, 44))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, n.count())

	report, err = s.Dispatch(ctx, at(8, 46))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Sent)
	require.Len(t, report.Details, 1)
	assert.Equal(t, &model.NotificationOutcome{
		ReminderID: "rem-a",
		EventID:    "event-a",
		EventTitle: "Standup",
		Status:     model.NotificationSent,
	}, report.Details[0])

	require.Len(t, n.sent, 1)
	assert.Equal(t, "ann@example.com", n.sent[0].to.Email)
	assert.Equal(t, &model.Notification{
		Subject:     "Reminder: Standup",
		Title:       "Standup",
		Description: "Room 4",
		Date:        "10 March 2025",
		Time:        "09:00",
		LeadTime:    "15 minutes",
	}, n.sent[0].n)

	r, ok := store.GetReminder("rem-a")
	require.True(t, ok)
	assert.True(t, r.NotificationSent)

	report, err = s.Dispatch(ctx, at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 1, n.count())
}

func TestDispatchIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, "One", "Two", "Three")
	n := &fakeNotifier{failOn: map[string]error{"Two": errors.New("transport down")}}
	s := newTestSender(store, n)

	report, err := s.Dispatch(ctx, at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 1, report.Failed)

	for _, o := range report.Details {
		if o.EventTitle == "Two" {
			assert.Equal(t, model.NotificationFailed, o.Status)
			assert.Equal(t, "transport down", o.Error)
		}
	}

	r, _ := store.GetReminder("rem-b")
	assert.False(t, r.NotificationSent)

	delete(n.failOn, "Two")
	report, err = s.Dispatch(ctx, at(8, 51))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, "rem-b", report.Details[0].ReminderID)
	assert.Equal(t, 3, n.count())
}

func TestDispatchSentNotMarked(t *testing.T) {
	ctx := context.Background()
	store := &failingMarkStore{Storage: newStore(t, "Standup"), err: errors.New("write timeout")}
	n := &fakeNotifier{}
	s := newTestSender(store, n)

	report, err := s.Dispatch(ctx, at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Unmarked)
	assert.Equal(t, model.NotificationSentNotMarked, report.Details[0].Status)
	assert.Equal(t, 1, n.count())

	r, _ := store.GetReminder("rem-a")
	assert.False(t, r.NotificationSent)
}

func TestDispatchMarkLostRaceCountsAsSent(t *testing.T) {
	store := &failingMarkStore{Storage: newStore(t, "Standup"), err: model.ErrNoRecord}
	s := newTestSender(store, &fakeNotifier{})

	report, err := s.Dispatch(context.Background(), at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Empty(t, report.Details[0].Error)
}

func TestDispatchStoreUnavailable(t *testing.T) {
	n := &fakeNotifier{}
	s := newTestSender(unavailableStore{newStore(t, "Standup")}, n)

	report, err := s.Dispatch(context.Background(), at(8, 50))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, 0, n.count())
}

func TestDispatchLockBusy(t *testing.T) {
	n := &fakeNotifier{}
	s := newTestSender(newStore(t, "Standup"), n)

	release, err := s.lock.TryLock(context.Background())
	require.NoError(t, err)

	_, err = s.Dispatch(context.Background(), at(8, 50))
	require.ErrorIs(t, err, model.ErrPassInProgress)
	assert.Equal(t, 0, n.count())

	release()
	report, err := s.Dispatch(context.Background(), at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
}

func TestDispatchCancelled(t *testing.T) {
	store := newStore(t, "One", "Two")
	n := &fakeNotifier{}
	s := newTestSender(store, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Dispatch(ctx, at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Failed)
	for _, o := range report.Details {
		assert.Equal(t, cancelledReason, o.Error)
	}
	assert.Equal(t, 0, n.count())

	r, _ := store.GetReminder("rem-a")
	assert.False(t, r.NotificationSent)
}

func TestDispatchNoRecipient(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.AddEvent(&model.Event{ID: "e", UserID: "ghost", Title: "Orphan", Start: at(9, 0), End: at(9, 0)}, nil))
	require.NoError(t, store.AddReminder(&model.Reminder{ID: "r", EventID: "e", MinutesBefore: 0}))

	s := newTestSender(store, NewLogNotifier(zap.NewNop().Sugar()))
	report, err := s.Dispatch(context.Background(), at(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, model.ErrNoRecipient.Error(), report.Details[0].Error)
}

func TestDispatchSkipsUnmappableRow(t *testing.T) {
	store := newStore(t, "Standup")
	n := &fakeNotifier{}
	s := newTestSender(badZoneStore{store}, n)

	report, err := s.Dispatch(context.Background(), at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, "rem-a", report.Details[0].ReminderID)
	assert.Equal(t, 1, n.count())

	r, _ := store.GetReminder("rem-a")
	assert.True(t, r.NotificationSent)
}

func TestDispatchStopsBeforeLockExpires(t *testing.T) {
	store := newStore(t, "One", "Two")
	s := newTestSender(store, blockingNotifier{})
	s.workers = 1
	s.passTimeout = 50 * time.Millisecond

	report, err := s.Dispatch(context.Background(), at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, context.DeadlineExceeded.Error(), report.Details[0].Error)
	assert.Equal(t, cancelledReason, report.Details[1].Error)

	for _, id := range []string{"rem-a", "rem-b"} {
		r, _ := store.GetReminder(id)
		assert.False(t, r.NotificationSent)
	}
}

func TestPassBudget(t *testing.T) {
	assert.Equal(t, 4*time.Minute+55*time.Second, passBudget(5*time.Minute, 5*time.Second))
	assert.Equal(t, 2*time.Second, passBudget(4*time.Second, 5*time.Second))
	assert.Equal(t, 2500*time.Millisecond, passBudget(5*time.Second, 5*time.Second))
}
