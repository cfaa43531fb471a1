package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
	holidays         holidayCalendar
}

type eventsRepository interface {
	GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.OccurrencesFilter) ([]*model.Event, error)
	GetRecurrenceRule(ctx context.Context, q database.Queryable, eventID string) (*model.RecurrenceRule, error)
	GetRecurrenceRules(ctx context.Context, q database.Queryable, eventIDs []string) (map[string]*model.RecurrenceRule, error)
}

type holidayCalendar interface {
	Between(from, to time.Time) []*model.Event
}

func NewService(db database.PGX, repo eventsRepository, holidays holidayCalendar) *Service {
	return &Service{
		db:               db,
		eventsRepository: repo,
		holidays:         holidays,
	}
}

// GetOccurrences returns every occurrence of the user's events, plus
// holidays, that intersects the filter window.
func (s *Service) GetOccurrences(ctx context.Context, filter model.OccurrencesFilter) ([]*model.Occurrence, error) {
	if filter.To.Before(filter.From) {
		return nil, model.ErrInvalidWindow
	}

	baseEvents, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	var recurringIDs []string
	for _, e := range baseEvents {
		if e.IsRecurring {
			recurringIDs = append(recurringIDs, e.ID)
		}
	}

	rules := map[string]*model.RecurrenceRule{}
	if len(recurringIDs) != 0 {
		rules, err = s.eventsRepository.GetRecurrenceRules(ctx, s.db, recurringIDs)
		if err != nil {
			return nil, fmt.Errorf("eventsRepository.GetRecurrenceRules: %w", err)
		}
	}

	var single []*model.Event
	var occurrences []*model.Occurrence
	for _, e := range baseEvents {
		if !e.IsRecurring {
			if overlaps(e.IsAllDay, e.Start, e.End, filter.From, filter.To) {
				single = append(single, e)
			}
			continue
		}

		rule, ok := rules[e.ID]
		if !ok {
			return nil, fmt.Errorf("recurring event %v has no rule: %w", e.ID, model.ErrInvalidRule)
		}

		expanded, err := Expand(e, rule, filter.From, filter.To)
		if err != nil {
			return nil, fmt.Errorf("expand event %v: %w", e.ID, err)
		}
		occurrences = append(occurrences, expanded...)
	}

	if s.holidays != nil {
		single = append(single, s.holidays.Between(filter.From, filter.To)...)
	}

	return Merge(single, occurrences), nil
}

// GetEventOccurrences expands a single event over [from, to].
func (s *Service) GetEventOccurrences(ctx context.Context, id string, from, to time.Time) ([]*model.Occurrence, error) {
	if to.Before(from) {
		return nil, model.ErrInvalidWindow
	}

	event, err := s.eventsRepository.GetEventByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if !event.IsRecurring {
		if !overlaps(event.IsAllDay, event.Start, event.End, from, to) {
			return []*model.Occurrence{}, nil
		}
		return Merge([]*model.Event{event}, nil), nil
	}

	rule, err := s.eventsRepository.GetRecurrenceRule(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, fmt.Errorf("recurring event %v has no rule: %w", id, model.ErrInvalidRule)
		}
		return nil, fmt.Errorf("eventsRepository.GetRecurrenceRule: %w", err)
	}

	occurrences, err := Expand(event, rule, from, to)
	if err != nil {
		return nil, fmt.Errorf("expand event %v: %w", id, err)
	}

	return Merge(nil, occurrences), nil
}
