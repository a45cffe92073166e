// Package sqlite stores the key-value entries in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

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
	` + colUpdatedAt + ` INTEGER NOT NULL
)`

type repo struct {
	db *sql.DB
}

// NewKVRepository Открывает (создает) файл базы и таблицу.
// Возвращает функцию закрытия соединения
func NewKVRepository(ctx context.Context, path string) (repository.KVRepository, func(), error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// одна запись за раз, иначе SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create schema: %w", err)
	}

	cleanup := func() {
		_ = db.Close()
	}
	return &repo{db: db}, cleanup, nil
}

func (r *repo) Get(ctx context.Context, key string) (string, error) {
	query := sq.Select(colValue).
		From(table).
		Where(sq.Eq{colName: key})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var value string
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (r *repo) Set(ctx context.Context, key, value string) error {
	query := sq.Insert(table).
		Columns(colName, colValue, colUpdatedAt).
		Values(key, value, time.Now().UTC().UnixMilli()).
		Suffix("ON CONFLICT(" + colName + ") DO UPDATE SET " +
			colValue + " = excluded." + colValue + ", " +
			colUpdatedAt + " = excluded." + colUpdatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
