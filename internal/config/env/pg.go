package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"mini_casino/internal/config"
)

const (
	dsnName = "PG_DSN"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig Нужен только драйверу postgres. DSN разбирается сразу, в формате pgxpool
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.New("pg dsn not found")
	}
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("invalid pg dsn: %w", err)
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
