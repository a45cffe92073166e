package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mini_casino/internal/repository"
)

const (
	table        = "kv_store"
	colName      = "name"
	colValue     = "value"
	colUpdatedAt = "updated_at"
)

const schema = `CREATE TABLE IF NOT EXISTS ` + table + ` (
	` + colName + ` TEXT PRIMARY KEY,
	` + colValue + ` TEXT NOT NULL,
	` + colUpdatedAt + ` TIMESTAMPTZ NOT NULL
)`

// pgx понимает только $N
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewKVRepository(dbc *pgxpool.Pool) repository.KVRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Migrate Создает таблицу, если ее нет
func Migrate(ctx context.Context, dbc *pgxpool.Pool) error {
	if _, err := dbc.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get - значение по ключу.
// Если запрос идет внутри транзакции (trm), читаем в ней
func (r *repo) Get(ctx context.Context, key string) (string, error) {
	query := psql.Select(colValue).
		From(table).
		Where(sq.Eq{colName: key})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var value string
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// Set - upsert значения
func (r *repo) Set(ctx context.Context, key, value string) error {
	query := psql.Insert(table).
		Columns(colName, colValue, colUpdatedAt).
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (" + colName + ") DO UPDATE SET " +
			colValue + " = EXCLUDED." + colValue + ", " +
			colUpdatedAt + " = EXCLUDED." + colUpdatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}
