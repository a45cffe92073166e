package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// Драйверы хранилища баланса
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type HTTPConfig interface {
	Address() string
}

type StorageConfig interface {
	Driver() string
}

type PGConfig interface {
	DSN() string
}

type SQLiteConfig interface {
	Path() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type LogConfig interface {
	Level() string
	Mode() string
}

type SessionConfig interface {
	// RandomSeed 0 - зерно берется из времени запуска
	RandomSeed() uint64
	SchedulerPoolSize() int
}

type LedgerConfig interface {
	Key() string
	StartingCoins() int
}

type RouletteConfig interface {
	Cost() int
	Payout() int
	WinProbability() float64
	RevealDelay() time.Duration
}

type SlotsConfig interface {
	Cost() int
	Payout() int
	Symbols() []int
	AnimationWindow() time.Duration
	FrameInterval() time.Duration
}

type SceneConfig interface {
	FPS() int
	Offsets() []float64
	TextureSize() int
	AmbientLight() float64
}

// GameConfig Игровые таблицы из YAML
type GameConfig interface {
	Ledger() LedgerConfig
	Roulette() RouletteConfig
	Slots() SlotsConfig
	Scene() SceneConfig
}
