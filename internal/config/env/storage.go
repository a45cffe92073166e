package env

import (
	"fmt"
	"os"
	"strconv"

	"mini_casino/internal/config"
)

const (
	storageDriverEnvName = "STORAGE_DRIVER"
	sqlitePathEnvName    = "SQLITE_PATH"
	redisAddrEnvName     = "REDIS_ADDR"
	redisPasswordEnvName = "REDIS_PASSWORD"
	redisDBEnvName       = "REDIS_DB"

	defaultSQLitePath = "casino.db"
)

type storageConfig struct {
	driver string
}

func NewStorageConfig() (config.StorageConfig, error) {
	driver := os.Getenv(storageDriverEnvName)
	if len(driver) == 0 {
		driver = config.StorageSQLite
	}

	switch driver {
	case config.StorageMemory, config.StorageSQLite, config.StoragePostgres, config.StorageRedis:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	return &storageConfig{driver: driver}, nil
}

func (cfg *storageConfig) Driver() string {
	return cfg.driver
}

type sqliteConfig struct {
	path string
}

func NewSQLiteConfig() (config.SQLiteConfig, error) {
	path := os.Getenv(sqlitePathEnvName)
	if len(path) == 0 {
		path = defaultSQLitePath
	}
	return &sqliteConfig{path: path}, nil
}

func (cfg *sqliteConfig) Path() string {
	return cfg.path
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		return nil, fmt.Errorf("redis address not found")
	}

	db := 0
	if raw := os.Getenv(redisDBEnvName); len(raw) != 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid redis db %q", raw)
		}
		db = parsed
	}

	return &redisConfig{
		addr:     addr,
		password: os.Getenv(redisPasswordEnvName),
		db:       db,
	}, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.addr
}

func (cfg *redisConfig) Password() string {
	return cfg.password
}

func (cfg *redisConfig) DB() int {
	return cfg.db
}
