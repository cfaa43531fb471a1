package reminders

import "github.com/marikeiske/datekeeper-plus/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var dueQuery = database.PSQL.
	Select(
		"r.id::text AS reminder_id",
		"r.event_id::text AS event_id",
		"r.minutes_before",
		"r.notification_sent",
		"e.title",
		"e.description",
		"e.start_date",
		"e.end_date",
		"e.timezone",
		"e.is_all_day",
		"e.is_recurring",
		"u.id::text AS user_id",
		"u.email",
		"u.push_token",
	).
	From(database.RemindersTable + " r").
	Join(database.EventsTable + " e on e.id = r.event_id").
	Join(database.UsersTable + " u on u.id = e.user_id")
