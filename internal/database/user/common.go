package user

import (
	"github.com/marikeiske/datekeeper-plus/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id::text AS id",
		"full_name",
		"email",
		"push_token",
	).
	From(database.UsersTable)
