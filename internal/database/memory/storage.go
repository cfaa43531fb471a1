package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// Storage keeps users, events, rules and reminders in memory. It satisfies
// the same repository contracts as the Postgres repositories; the
// database.Queryable argument is ignored.
type Storage struct {
	mu        sync.RWMutex
	users     map[string]model.User
	events    map[string]model.Event
	rules     map[string]model.RecurrenceRule
	reminders map[string]model.Reminder
	idSeq     int
}

func New() *Storage {
	return &Storage{
		users:     make(map[string]model.User),
		events:    make(map[string]model.Event),
		rules:     make(map[string]model.RecurrenceRule),
		reminders: make(map[string]model.Reminder),
	}
}

func (s *Storage) Ping(_ context.Context) error {
	return nil
}

func (s *Storage) AddUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.nextID()
	}
	s.users[u.ID] = *u
}

// AddEvent stores the event and, when it recurs, its rule. A recurring event
// without a valid rule is rejected.
func (s *Storage) AddEvent(e *model.Event, rule *model.RecurrenceRule) error {
	if e.IsRecurring {
		if err := rule.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; ok && e.ID != "" {
		return fmt.Errorf("duplicate event id %q: %w", e.ID, model.ErrAlreadyExists)
	}
	if e.ID == "" {
		e.ID = s.nextID()
	}
	if e.Color == "" {
		e.Color = model.DefaultEventColor
	}
	s.events[e.ID] = *e
	if e.IsRecurring {
		r := *rule
		r.EventID = e.ID
		s.rules[e.ID] = r
	}

	return nil
}

func (s *Storage) AddReminder(r *model.Reminder) error {
	if r.MinutesBefore < 0 {
		return fmt.Errorf("negative lead time %d", r.MinutesBefore)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[r.EventID]; !ok {
		return fmt.Errorf("event %q: %w", r.EventID, model.ErrNoRecord)
	}
	if r.ID == "" {
		r.ID = s.nextID()
	}
	s.reminders[r.ID] = *r

	return nil
}

func (s *Storage) GetReminder(id string) (model.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reminders[id]
	return r, ok
}

func (s *Storage) GetEventByID(_ context.Context, _ database.Queryable, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return &e, nil
}

// GetEvents returns the user's recurring events and the single events that
// may touch the filter window. Exact overlap is left to the caller, as with
// the Postgres repository.
func (s *Storage) GetEvents(_ context.Context, _ database.Queryable, filter model.OccurrencesFilter) ([]*model.Event, error) {
	const slack = 24 * time.Hour

	s.mu.RLock()
	res := make([]*model.Event, 0)
	for _, e := range s.events {
		if e.UserID != filter.UserID {
			continue
		}
		if e.Start.After(filter.To.Add(slack)) {
			continue
		}
		if !e.IsRecurring && e.End.Before(filter.From.Add(-slack)) {
			continue
		}
		e := e
		res = append(res, &e)
	}
	s.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if !res[i].Start.Equal(res[j].Start) {
			return res[i].Start.Before(res[j].Start)
		}
		return res[i].ID < res[j].ID
	})

	return res, nil
}

func (s *Storage) GetRecurrenceRule(_ context.Context, _ database.Queryable, eventID string) (*model.RecurrenceRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[eventID]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return &r, nil
}

func (s *Storage) GetRecurrenceRules(_ context.Context, _ database.Queryable, eventIDs []string) (map[string]*model.RecurrenceRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make(map[string]*model.RecurrenceRule, len(eventIDs))
	for _, id := range eventIDs {
		if r, ok := s.rules[id]; ok {
			r := r
			res[id] = &r
		}
	}
	return res, nil
}

func (s *Storage) GetUserByID(_ context.Context, _ database.Queryable, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return &u, nil
}

func (s *Storage) GetRemindersDue(_ context.Context, _ database.Queryable, now time.Time) ([]*model.DueReminder, error) {
	s.mu.RLock()
	res := make([]*model.DueReminder, 0)
	for _, r := range s.reminders {
		if r.NotificationSent {
			continue
		}
		e, ok := s.events[r.EventID]
		if !ok {
			continue
		}
		due := &model.DueReminder{
			Reminder: r,
			Event:    e,
		}
		if u, ok := s.users[e.UserID]; ok {
			due.Recipient = u.Recipient()
		} else {
			due.Recipient = model.Recipient{UserID: e.UserID}
		}
		if due.IsDue(now) {
			res = append(res, due)
		}
	}
	s.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if !res[i].Event.Start.Equal(res[j].Event.Start) {
			return res[i].Event.Start.Before(res[j].Event.Start)
		}
		return res[i].Reminder.ID < res[j].Reminder.ID
	})

	return res, nil
}

// MarkReminderSent sets the latch only if it is still unset.
func (s *Storage) MarkReminderSent(_ context.Context, _ database.Queryable, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok || r.NotificationSent {
		return model.ErrNoRecord
	}
	r.NotificationSent = true
	s.reminders[id] = r
	return nil
}

func (s *Storage) nextID() string {
	s.idSeq++
	return strconv.Itoa(s.idSeq)
}
