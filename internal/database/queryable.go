package database

import (
	"context"

	"github.com/jackc/pgconn"
)

// PGX содержит основные операции для работы с базой данных.
type PGX interface {
	Queryable
	Ping(ctx context.Context) error
}

// Queryable содержит основные операции для query-инга db.
type Queryable interface {
	Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error)
	Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error
	Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// Sqlizer is satisfied by every squirrel builder.
type Sqlizer interface {
	ToSql() (sql string, args []interface{}, err error)
}
