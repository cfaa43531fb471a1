package database

import sq "github.com/Masterminds/squirrel"

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	UsersTable           = "users"
	EventsTable          = "events"
	RecurrenceRulesTable = "recurrence_rules"
	RemindersTable       = "reminders"
)
