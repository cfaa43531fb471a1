package reminders

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/marikeiske/datekeeper-plus/internal/database"
	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// MarkReminderSent sets the sent latch only if it is still unset. It returns
// model.ErrNoRecord when no pending reminder with this id exists, which is
// the case when a concurrent pass already marked it.
func (*Repository) MarkReminderSent(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Update(database.RemindersTable).
		Set("notification_sent", true).
		Set("sent_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "notification_sent": false})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
