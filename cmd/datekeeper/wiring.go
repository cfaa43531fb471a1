package main

import (
	"context"
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/config"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/database/events"
	"github.com/marikeiske/datekeeper-plus/internal/database/memory"
	"github.com/marikeiske/datekeeper-plus/internal/database/reminders"
	"github.com/marikeiske/datekeeper-plus/internal/database/user"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/marikeiske/datekeeper-plus/internal/notifications"
	"github.com/marikeiske/datekeeper-plus/internal/pkg/fcm"
	"github.com/marikeiske/datekeeper-plus/internal/redis"
	"go.uber.org/zap"
)

const dispatchLockKey = "datekeeper:dispatch"

type eventsRepository interface {
	GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.OccurrencesFilter) ([]*model.Event, error)
	GetRecurrenceRule(ctx context.Context, q database.Queryable, eventID string) (*model.RecurrenceRule, error)
	GetRecurrenceRules(ctx context.Context, q database.Queryable, eventIDs []string) (map[string]*model.RecurrenceRule, error)
}

type remindersRepository interface {
	GetRemindersDue(ctx context.Context, q database.Queryable, now time.Time) ([]*model.DueReminder, error)
	MarkReminderSent(ctx context.Context, q database.Queryable, id string) error
}

type usersRepository interface {
	GetUserByID(ctx context.Context, q database.Queryable, id string) (*model.User, error)
}

type repositories struct {
	db        database.PGX
	events    eventsRepository
	reminders remindersRepository
	users     usersRepository
}

func initRepositories(ctx context.Context) (*repositories, error) {
	switch config.Storage() {
	case "memory":
		store := memory.New()
		return &repositories{
			events:    store,
			reminders: store,
			users:     store,
		}, nil
	case "postgres":
		db, err := database.NewPGX(ctx)
		if err != nil {
			return nil, err
		}
		return &repositories{
			db:        db,
			events:    events.NewRepository(),
			reminders: reminders.NewRepository(),
			users:     user.NewRepository(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", config.Storage())
	}
}

type notifier interface {
	Send(ctx context.Context, to model.Recipient, n *model.Notification) error
}

func initNotifier(ctx context.Context, logger *zap.SugaredLogger) (notifier, error) {
	switch config.Notifier() {
	case "log":
		return notifications.NewLogNotifier(logger), nil
	case "fcm":
		return fcm.NewService(ctx, config.FCMCredentialsPath())
	default:
		return nil, fmt.Errorf("unknown notifier %q", config.Notifier())
	}
}

type passLock interface {
	TryLock(ctx context.Context) (func(), error)
}

func initLock(logger *zap.SugaredLogger) passLock {
	if config.RedisURL() == "" {
		return &notifications.LocalLock{}
	}

	return redis.NewLock(redis.NewPool(logger, config.RedisURL()), logger, dispatchLockKey, config.DispatchLockTTL())
}
