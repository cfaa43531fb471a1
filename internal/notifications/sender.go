package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/config"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const cancelledReason = "pass cancelled"

type Sender struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	selector  *Selector
	reminders remindersRepository
	notifier  notifier
	lock      passLock

	workers     int
	sendTimeout time.Duration
	markTimeout time.Duration
	passTimeout time.Duration
	location    *time.Location
}

type remindersRepository interface {
	dueRemindersRepository
	MarkReminderSent(ctx context.Context, q database.Queryable, id string) error
}

type notifier interface {
	Send(ctx context.Context, to model.Recipient, n *model.Notification) error
}

// passLock serializes dispatch passes. TryLock returns model.ErrPassInProgress
// when another pass holds the lock.
type passLock interface {
	TryLock(ctx context.Context) (release func(), err error)
}

func NewSender(
	db database.PGX,
	logger *zap.SugaredLogger,
	reminders remindersRepository,
	notifier notifier,
	lock passLock,
) *Sender {
	return &Sender{
		db:          db,
		logger:      logger,
		selector:    NewSelector(db, logger, reminders),
		reminders:   reminders,
		notifier:    notifier,
		lock:        lock,
		workers:     config.DispatchWorkers(),
		sendTimeout: config.SendTimeout(),
		markTimeout: config.MarkTimeout(),
		passTimeout: passBudget(config.DispatchLockTTL(), config.MarkTimeout()),
		location:    config.Location(),
	}
}

// passBudget is how long a pass may keep starting sends while it holds a
// lock that expires after ttl. The margin leaves room for the last latch write.
func passBudget(ttl, markTimeout time.Duration) time.Duration {
	if ttl <= markTimeout {
		return ttl / 2
	}
	return ttl - markTimeout
}

// Dispatch runs one pass: every due reminder gets at most one send attempt,
// and a successful send sets the reminder's latch. A failing reminder never
// affects the others. The returned error is set only when the pass could not
// run at all, in which case nothing was sent. The pass ends before the lock
// expires; reminders not started by then are reported as cancelled.
func (s *Sender) Dispatch(ctx context.Context, now time.Time) (*model.DispatchReport, error) {
	release, err := s.lock.TryLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, s.passTimeout)
	defer cancel()

	due, err := s.selector.SelectDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("select due reminders: %w", err)
	}

	s.logger.Debugw("dispatching reminders", "now", now, "due", len(due))

	outcomes := make([]*model.NotificationOutcome, len(due))
	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i, d := range due {
		i, d := i, d
		if ctx.Err() != nil {
			outcomes[i] = failedOutcome(d, cancelledReason)
			continue
		}
		g.Go(func() error {
			outcomes[i] = s.process(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	report := &model.DispatchReport{Details: make([]*model.NotificationOutcome, 0, len(outcomes))}
	for _, o := range outcomes {
		report.Add(o)
	}

	s.logger.Infow("dispatch pass finished",
		"processed", report.Processed,
		"sent", report.Sent,
		"sent_not_marked", report.Unmarked,
		"failed", report.Failed,
	)

	return report, nil
}

func (s *Sender) process(ctx context.Context, d *model.DueReminder) *model.NotificationOutcome {
	if ctx.Err() != nil {
		return failedOutcome(d, cancelledReason)
	}

	n := render(d, s.location)

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	err := s.notifier.Send(sendCtx, d.Recipient, n)
	cancel()
	if err != nil {
		s.logger.Warnw("failed to send reminder", "reminder", d.Reminder.ID, "event", d.Event.ID, "err", err)
		return failedOutcome(d, err.Error())
	}

	// the notification is out; the latch must be written even if the pass
	// is being cancelled
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.markTimeout)
	defer cancel()

	o := &model.NotificationOutcome{
		ReminderID: d.Reminder.ID,
		EventID:    d.Event.ID,
		EventTitle: d.Event.Title,
		Status:     model.NotificationSent,
	}

	switch err := s.reminders.MarkReminderSent(markCtx, s.db, d.Reminder.ID); {
	case err == nil:
	case errors.Is(err, model.ErrNoRecord):
		s.logger.Infow("reminder already marked by another writer", "reminder", d.Reminder.ID)
	default:
		s.logger.Errorw("reminder sent but not marked", "reminder", d.Reminder.ID, "err", err)
		o.Status = model.NotificationSentNotMarked
		o.Error = err.Error()
	}

	return o
}

func failedOutcome(d *model.DueReminder, reason string) *model.NotificationOutcome {
	return &model.NotificationOutcome{
		ReminderID: d.Reminder.ID,
		EventID:    d.Event.ID,
		EventTitle: d.Event.Title,
		Status:     model.NotificationFailed,
		Error:      reason,
	}
}
