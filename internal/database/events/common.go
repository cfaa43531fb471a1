package events

import "github.com/marikeiske/datekeeper-plus/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id::text AS id",
		"user_id::text AS user_id",
		"title",
		"description",
		"start_date",
		"end_date",
		"timezone",
		"is_all_day",
		"color",
		"is_recurring",
	).
	From(database.EventsTable)

var rulesQuery = database.PSQL.
	Select(
		"event_id::text AS event_id",
		"frequency",
		`"interval"`,
		"end_date",
	).
	From(database.RecurrenceRulesTable)
