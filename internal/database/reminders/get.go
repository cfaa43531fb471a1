package reminders

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// GetRemindersDue returns pending reminders whose trigger time,
// event start minus lead time, is not after now. Rows that cannot be mapped
// are returned with Invalid set instead of failing the whole batch.
func (*Repository) GetRemindersDue(ctx context.Context, q database.Queryable, now time.Time) ([]*model.DueReminder, error) {
	qb := dueQuery.
		Where(sq.Eq{"r.notification_sent": false}).
		Where("e.start_date - make_interval(mins => r.minutes_before) <= ?", now).
		OrderBy("e.start_date", "r.id")

	var dtos []*dueReminderDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.DueReminder, 0, len(dtos))
	for _, d := range dtos {
		res = append(res, mapToDueReminder(d))
	}

	return res, nil
}
