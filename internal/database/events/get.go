package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// allDaySlack widens the SQL window so all-day events, which are compared by
// calendar date, are not lost to timezone offsets. The service filters exactly.
const allDaySlack = 24 * time.Hour

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(dto)
}

func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.OccurrencesFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"user_id": filter.UserID}).
		Where(sq.LtOrEq{"start_date": filter.To.Add(allDaySlack)}).
		Where(sq.Or{sq.Eq{"is_recurring": true}, sq.GtOrEq{"end_date": filter.From.Add(-allDaySlack)}}).
		OrderBy("start_date", "id")

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		var err error
		res[i], err = mapToEvent(d)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (*Repository) GetRecurrenceRule(ctx context.Context, q database.Queryable, eventID string) (*model.RecurrenceRule, error) {
	qb := rulesQuery.
		Where(sq.Eq{"event_id": eventID})

	dto := &ruleDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToRule(dto)
}

func (*Repository) GetRecurrenceRules(ctx context.Context, q database.Queryable, eventIDs []string) (map[string]*model.RecurrenceRule, error) {
	qb := rulesQuery.
		Where(sq.Eq{"event_id": eventIDs})

	var dtos []*ruleDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make(map[string]*model.RecurrenceRule, len(dtos))
	for _, d := range dtos {
		rule, err := mapToRule(d)
		if err != nil {
			return nil, err
		}
		res[rule.EventID] = rule
	}

	return res, nil
}
