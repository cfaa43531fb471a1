package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"go.uber.org/zap"
)

// Selector finds the reminders whose trigger time has arrived. It only reads.
type Selector struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	reminders dueRemindersRepository
}

type dueRemindersRepository interface {
	GetRemindersDue(ctx context.Context, q database.Queryable, now time.Time) ([]*model.DueReminder, error)
}

func NewSelector(db database.PGX, logger *zap.SugaredLogger, reminders dueRemindersRepository) *Selector {
	return &Selector{
		db:        db,
		logger:    logger,
		reminders: reminders,
	}
}

// SelectDue returns pending reminders with event start minus lead time at or
// before now. Rows from the store are checked again here; malformed ones are
// skipped with a warning.
func (s *Selector) SelectDue(ctx context.Context, now time.Time) ([]*model.DueReminder, error) {
	rows, err := s.reminders.GetRemindersDue(ctx, s.db, now)
	if err != nil {
		return nil, fmt.Errorf("remindersRepository.GetRemindersDue: %w", err)
	}

	res := make([]*model.DueReminder, 0, len(rows))
	for _, d := range rows {
		if err := validateDue(d); err != nil {
			s.logger.Warnw("skipping malformed reminder", "reminder", d.Reminder.ID, "err", err)
			continue
		}
		if !d.IsDue(now) {
			continue
		}
		res = append(res, d)
	}

	return res, nil
}

func validateDue(d *model.DueReminder) error {
	switch {
	case d.Invalid != nil:
		return d.Invalid
	case d.Reminder.ID == "":
		return errors.New("empty reminder id")
	case d.Reminder.MinutesBefore < 0:
		return fmt.Errorf("negative lead time %d", d.Reminder.MinutesBefore)
	case d.Event.ID == "" || d.Event.ID != d.Reminder.EventID:
		return fmt.Errorf("reminder event %q does not match joined event %q", d.Reminder.EventID, d.Event.ID)
	case d.Event.Start.IsZero():
		return fmt.Errorf("event %v has no start", d.Event.ID)
	}

	return nil
}
