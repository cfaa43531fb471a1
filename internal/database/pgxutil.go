package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/marikeiske/datekeeper-plus/internal/config"
	"github.com/xlab/closer"
)

// pgxUtil обертка для упрощенной работы с pgx.
type pgxUtil struct {
	pool *pgxpool.Pool
}

// NewPGX создает структуру, с помощью которой получается доступ к pgx pool
func NewPGX(ctx context.Context) (PGX, error) {
	poolConfig, err := pgxpool.ParseConfig(config.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	closer.Bind(pool.Close)

	return &pgxUtil{pool: pool}, nil
}

// Exec исполняет query.
func (p *pgxUtil) Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	return execFn(ctx, p.pool, sqlizer)
}

// Select может сканировать сразу несколько рядов в slice.
// Если рядов нет, возвращает nil.
func (p *pgxUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return selectFn(ctx, p.pool, dst, sqlizer)
}

// Get сканирует один ряд.
// Если рядов нет, возвращает ошибку pgx.ErrNoRows.
func (p *pgxUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return getFn(ctx, p.pool, dst, sqlizer)
}

// Ping проверяет доступность базы.
func (p *pgxUtil) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func execFn(ctx context.Context, e execer, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}

	return e.Exec(ctx, query, args...)
}

func selectFn(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Select(ctx, q, dst, query, args...)
}

func getFn(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Get(ctx, q, dst, query, args...)
}
